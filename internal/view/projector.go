package view

import (
	"context"
	"slices"

	"github.com/jparise/gh-repos/internal/github"
)

// ApplyToRepository returns repo with the viewer state of update copied onto
// it when both have the same ID. Other fields are left alone: update may be a
// search summary without the detail fields repo carries.
func ApplyToRepository(repo, update github.Repository) github.Repository {
	if repo.ID != update.ID {
		return repo
	}
	repo.ViewerHasStarred = update.ViewerHasStarred
	repo.ViewerSubscription = update.ViewerSubscription
	return repo
}

// ApplyToList applies update to every entry of repos with the same ID. The
// input slice is not modified; if nothing matches it is returned as is.
func ApplyToList(repos []github.Repository, update github.Repository) []github.Repository {
	var out []github.Repository
	for i, repo := range repos {
		if repo.ID != update.ID {
			continue
		}
		if out == nil {
			out = slices.Clone(repos)
		}
		out[i] = ApplyToRepository(repo, update)
	}
	if out == nil {
		return repos
	}
	return out
}

// applyToResult applies update to the repository held by a detail result.
// Failures and results still loading are returned unchanged.
func applyToResult(r Result[*github.Repository], update github.Repository) Result[*github.Repository] {
	repo := r.Value()
	if !r.IsSuccess() || repo == nil || repo.ID != update.ID {
		return r
	}
	applied := ApplyToRepository(*repo, update)
	return Success(&applied)
}

// follow calls apply for every update received until the channel closes.
func follow(updates <-chan github.Repository, apply func(github.Repository)) {
	for update := range updates {
		apply(update)
	}
}

// repositoryState is the state shared by the views that show a single
// repository.
type repositoryState struct {
	owner  string
	name   string
	result *Observable[Result[*github.Repository]]

	ctx    context.Context
	cancel context.CancelFunc
}

func newRepositoryState(updates func(context.Context) <-chan github.Repository, owner, name string) *repositoryState {
	ctx, cancel := context.WithCancel(context.Background())
	s := &repositoryState{
		owner:  owner,
		name:   name,
		result: NewObservable(Success[*github.Repository](nil)),
		ctx:    ctx,
		cancel: cancel,
	}
	go follow(updates(ctx), func(update github.Repository) {
		s.result.Update(func(r Result[*github.Repository]) Result[*github.Repository] {
			return applyToResult(r, update)
		})
	})
	return s
}

// current returns the loaded repository, or nil if none is loaded.
func (s *repositoryState) current() *github.Repository {
	r := s.result.Value()
	if !r.IsSuccess() {
		return nil
	}
	return r.Value()
}

func (s *repositoryState) isLoading() bool {
	r := s.result.Value()
	return r.IsSuccess() && r.Value() == nil
}
