// Package reposync keeps repository state consistent across every view that
// holds a copy of it.
//
// Every repository the Service obtains, whether from a search page, a direct
// lookup, or a star or subscription change, is published to a shared
// broadcaster. Views subscribe to Updates and merge what they receive into
// their own copies.
package reposync

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jparise/gh-repos/internal/broadcast"
	"github.com/jparise/gh-repos/internal/github"
)

// API is the subset of the GitHub client the Service depends on.
type API interface {
	SearchRepositories(ctx context.Context, query string, limit int, after string) (*github.SearchPage, error)
	GetRepository(ctx context.Context, owner, name string) (github.Repository, error)
	AddStar(ctx context.Context, id string) (bool, error)
	RemoveStar(ctx context.Context, id string) (bool, error)
	UpdateSubscription(ctx context.Context, id string, state github.SubscriptionState) (github.SubscriptionState, error)
}

// Service is the single source of truth for repository state.
type Service struct {
	api         API
	broadcaster *broadcast.Broadcaster[github.Repository]
	logger      *slog.Logger
}

// NewService creates a Service that publishes to broadcaster.
func NewService(api API, broadcaster *broadcast.Broadcaster[github.Repository], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:         api,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Updates returns a channel of every repository published after the call.
// The channel is closed when ctx is done.
func (s *Service) Updates(ctx context.Context) <-chan github.Repository {
	return s.broadcaster.Subscribe(ctx)
}

func (s *Service) publish(repo github.Repository) {
	s.broadcaster.Publish(repo)
}

// Get looks up a single repository and publishes it.
func (s *Service) Get(ctx context.Context, owner, name string) (github.Repository, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return github.Repository{}, &github.NotFoundError{Owner: owner, Name: name}
	}

	repo, err := s.api.GetRepository(ctx, owner, name)
	if err != nil {
		return github.Repository{}, err
	}
	s.publish(repo)
	return repo, nil
}

// searchPage fetches one page for cond and publishes every repository on it.
func (s *Service) searchPage(ctx context.Context, cond SearchCondition, cursor string) (*github.SearchPage, error) {
	s.logger.Debug("searching repositories", "query", cond.QueryText(), "limit", cond.Limit, "after", cursor)

	page, err := s.api.SearchRepositories(ctx, cond.QueryText(), cond.Limit, cursor)
	if err != nil {
		s.logger.Debug("search failed", "query", cond.QueryText(), "error", err)
		return nil, err
	}

	for _, repo := range page.Repositories {
		s.publish(repo)
	}
	return page, nil
}

// SetStar stars or unstars repo.
//
// The change is published before GitHub is asked to make it. If the request
// fails, the original repository is published again so every view rolls
// back, and the error is returned. On success the starred state reported by
// GitHub is returned; if it differs from the requested state, a corrected
// copy is published.
func (s *Service) SetStar(ctx context.Context, repo github.Repository, starred bool) (bool, error) {
	optimistic := repo
	optimistic.ViewerHasStarred = starred
	s.publish(optimistic)

	var confirmed bool
	var err error
	if starred {
		confirmed, err = s.api.AddStar(ctx, repo.ID)
	} else {
		confirmed, err = s.api.RemoveStar(ctx, repo.ID)
	}

	if err != nil {
		s.logger.Debug("rolling back star change", "repo", repo.FullName(), "error", err)
		s.publish(repo)
		return repo.ViewerHasStarred, err
	}

	if confirmed != starred {
		optimistic.ViewerHasStarred = confirmed
		s.publish(optimistic)
	}
	return confirmed, nil
}

// SetSubscription changes the viewer's notification subscription to repo,
// with the same publish-then-confirm behavior as SetStar.
func (s *Service) SetSubscription(ctx context.Context, repo github.Repository, state github.SubscriptionState) (github.SubscriptionState, error) {
	if state == github.SubscriptionNone {
		return repo.ViewerSubscription, ErrNoSubscriptionState
	}

	optimistic := repo
	optimistic.ViewerSubscription = state
	s.publish(optimistic)

	confirmed, err := s.api.UpdateSubscription(ctx, repo.ID, state)
	if err != nil {
		s.logger.Debug("rolling back subscription change", "repo", repo.FullName(), "error", err)
		s.publish(repo)
		return repo.ViewerSubscription, err
	}

	// GitHub did not echo a state we recognize; keep the requested one.
	if confirmed == github.SubscriptionNone {
		return state, nil
	}

	if confirmed != state {
		optimistic.ViewerSubscription = confirmed
		s.publish(optimistic)
	}
	return confirmed, nil
}
