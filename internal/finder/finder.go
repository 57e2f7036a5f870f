// Package finder runs gh-repos commands against the repository service:
// filtered searches, and lookups or changes across many repositories at once.
package finder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cli/go-gh/v2/pkg/text"
	"golang.org/x/sync/semaphore"

	"github.com/jparise/gh-repos/internal/display"
	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/reposync"
	"github.com/jparise/gh-repos/internal/timeparse"
)

// ViewerFunc returns the login of the authenticated user.
type ViewerFunc func(ctx context.Context) (string, error)

// Browser opens URLs. go-gh's browser.Browser implements it.
type Browser interface {
	Browse(url string) error
}

// Finder orchestrates repository commands.
type Finder struct {
	output *display.Output
	svc    *reposync.Service
	viewer ViewerFunc
	jobs   int
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Finder. jobs bounds the number of concurrent requests
// made by commands that act on several repositories.
func New(output *display.Output, svc *reposync.Service, viewer ViewerFunc, jobs int, logger *slog.Logger) *Finder {
	if jobs < 1 {
		jobs = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{
		output: output,
		svc:    svc,
		viewer: viewer,
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}
}

// Search prints the repositories matching opts, one page at a time.
func (f *Finder) Search(ctx context.Context, opts *SearchOptions) error {
	cond := opts.Condition
	keyword, err := f.keyword(ctx, opts)
	if err != nil {
		return err
	}
	cond.Keyword = keyword

	stream := f.svc.Search(ctx, cond)

	var pages, shown, total int
	for r := range stream.Results() {
		if r.Err != nil {
			return fmt.Errorf("failed to search repositories: %w", r.Err)
		}
		page := r.Page
		pages++
		total = page.Pagination.Count

		matched, err := filterByPattern(page.Repositories, opts.Match, opts.IgnoreCase)
		if err != nil {
			return err
		}
		for _, repo := range matched {
			f.output.Repository(repo)
		}
		shown += len(matched)

		if !page.Pagination.HasNext || (!opts.All && pages >= opts.Pages) {
			break
		}
		if err := page.Pagination.Next(ctx); err != nil {
			return fmt.Errorf("failed to fetch page %d: %w", pages+1, err)
		}
	}

	if shown == 0 {
		f.output.Warningf("No repositories match the search")
		return nil
	}
	f.output.Infof("Showing %d of %s", shown, text.Pluralize(total, "result"))
	return nil
}

// keyword returns the search keyword with qualifiers for the date and
// ownership filters appended.
func (f *Finder) keyword(ctx context.Context, opts *SearchOptions) (string, error) {
	terms := []string{opts.Condition.Keyword}

	if opts.CreatedAfter != nil {
		terms = append(terms, timeparse.Since("created", *opts.CreatedAfter))
	}
	if opts.PushedWithin > 0 {
		terms = append(terms, timeparse.Within("pushed", opts.PushedWithin, f.now()))
	}
	if opts.Mine {
		login, err := f.viewer(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to look up the authenticated user: %w", err)
		}
		terms = append(terms, "user:"+login)
	}

	return strings.TrimSpace(strings.Join(terms, " ")), nil
}

func filterByPattern(repos []github.Repository, patterns []string, ignoreCase bool) ([]github.Repository, error) {
	if len(patterns) == 0 {
		return repos, nil
	}

	if ignoreCase {
		normalized := make([]string, len(patterns))
		for i, p := range patterns {
			normalized[i] = strings.ToLower(p)
		}
		patterns = normalized
	}

	var filtered []github.Repository
	for _, repo := range repos {
		name := repo.FullName()
		if ignoreCase {
			name = strings.ToLower(name)
		}

		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("pattern %q failed to match %q: %w", pattern, repo.FullName(), err)
			}
			if matched {
				filtered = append(filtered, repo)
				break
			}
		}
	}
	return filtered, nil
}

// View prints the detail of each repository, or opens it in browser when
// browser is non-nil.
func (f *Finder) View(ctx context.Context, specs []RepoSpec, browser Browser) error {
	return f.each(ctx, "view", specs, func(ctx context.Context, spec RepoSpec) error {
		repo, err := f.svc.Get(ctx, spec.Owner, spec.Name)
		if err != nil {
			return err
		}
		if browser != nil {
			return browser.Browse(repo.URL)
		}
		f.output.Detail(repo)
		return nil
	})
}

// Star stars or unstars each repository.
func (f *Finder) Star(ctx context.Context, specs []RepoSpec, starred bool) error {
	verb := "star"
	if !starred {
		verb = "unstar"
	}

	return f.each(ctx, verb, specs, func(ctx context.Context, spec RepoSpec) error {
		repo, err := f.svc.Get(ctx, spec.Owner, spec.Name)
		if err != nil {
			return err
		}
		if repo.ViewerHasStarred == starred {
			f.output.Infof("%s is already %sred", repo.FullName(), verb)
			return nil
		}

		confirmed, err := f.svc.SetStar(ctx, repo, starred)
		if err != nil {
			return err
		}
		if confirmed != starred {
			return fmt.Errorf("GitHub did not %s the repository", verb)
		}
		f.output.Infof("%sred %s", strings.ToUpper(verb[:1])+verb[1:], repo.FullName())
		return nil
	})
}

// each runs fn for every spec with at most f.jobs running at once. Failures
// are reported as warnings; an error is returned only if every spec failed.
func (f *Finder) each(ctx context.Context, verb string, specs []RepoSpec, fn func(context.Context, RepoSpec) error) error {
	var wg sync.WaitGroup
	var errorCount atomic.Int32
	sem := semaphore.NewWeighted(int64(f.jobs))

	for _, spec := range specs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(spec RepoSpec) {
			defer wg.Done()
			defer sem.Release(1)

			if err := fn(ctx, spec); err != nil {
				errorCount.Add(1)
				f.warn(spec, err)
			}
		}(spec)
	}

	wg.Wait()

	if len(specs) > 0 && int(errorCount.Load()) == len(specs) {
		if len(specs) == 1 {
			return fmt.Errorf("failed to %s %s", verb, specs[0])
		}
		return fmt.Errorf("failed to %s all %d repositories", verb, len(specs))
	}
	return nil
}

func (f *Finder) warn(spec RepoSpec, err error) {
	if github.IsNotFound(err) {
		f.output.Warningf("%s does not exist", spec)
		return
	}
	f.logger.Debug("repository command failed", "repo", spec.String(), "error", err)
	f.output.Errorf("%s: %v (try again)", spec, err)
}
