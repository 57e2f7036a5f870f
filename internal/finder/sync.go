package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/jparise/gh-repos/internal/display"
	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/reposync"
	"github.com/jparise/gh-repos/internal/view"
)

// syncTimeout bounds how long Watch waits for a change to reach a view.
const syncTimeout = 10 * time.Second

// Subscribe sets the viewer's notification subscription to spec.
func (f *Finder) Subscribe(ctx context.Context, spec RepoSpec, state github.SubscriptionState) error {
	v := view.NewSubscriptionView(f.svc, spec.Owner, spec.Name)
	defer v.Close()

	if err := v.Load(ctx); err != nil {
		f.warn(spec, err)
		return fmt.Errorf("failed to load %s", spec)
	}

	previous := v.Selected()
	if previous == state {
		f.output.Infof("%s is already %s", spec, display.SubscriptionLabel(state))
		return nil
	}

	v.SelectSubscription(state)
	confirmed, err := v.UpdateSubscription(ctx)
	if err != nil {
		return fmt.Errorf("failed to update subscription for %s: %w", spec, err)
	}

	f.output.Infof("%s: %s -> %s", spec, display.SubscriptionLabel(previous), display.SubscriptionLabel(confirmed))
	return nil
}

// Watch searches for cond, opens the first result in a detail view, and
// stars it from the detail view while the list view watches. The star is then
// restored from the list view. Both views are printed after each change.
func (f *Finder) Watch(ctx context.Context, cond reposync.SearchCondition) error {
	list := view.NewListView(f.svc, f.logger)
	defer list.Close()

	list.Search(cond)
	state, err := waitFor(ctx, list.State(), func(r view.Result[view.ListState]) bool {
		return !r.IsSuccess() || r.Value().Pagination != nil
	})
	if err != nil {
		return fmt.Errorf("timed out waiting for search results: %w", err)
	}
	if !state.IsSuccess() {
		return fmt.Errorf("failed to search repositories: %w", state.Err())
	}
	if len(state.Value().Repositories) == 0 {
		f.output.Warningf("No repositories match the search")
		return nil
	}

	first := state.Value().Repositories[0]
	detail := view.NewDetailView(f.svc, first.Owner.Login, first.Name)
	defer detail.Close()
	if err := detail.Load(ctx); err != nil {
		return fmt.Errorf("failed to load %s: %w", first.FullName(), err)
	}

	f.printViews("Before", list, detail)

	starred, err := detail.ToggleStar(ctx)
	if err != nil {
		return fmt.Errorf("failed to toggle star on %s: %w", first.FullName(), err)
	}
	if err := waitForStar(ctx, list, detail, first.ID, starred); err != nil {
		return err
	}
	f.printViews("After toggling from the detail view", list, detail)

	current := list.State().Value().Value().Repositories[0]
	restored, err := list.ToggleStar(ctx, current)
	if err != nil {
		return fmt.Errorf("failed to restore star on %s: %w", first.FullName(), err)
	}
	if err := waitForStar(ctx, list, detail, first.ID, restored); err != nil {
		return err
	}
	f.printViews("After toggling back from the list view", list, detail)
	return nil
}

// waitForStar waits until both views show the repository with id as starred
// or not.
func waitForStar(ctx context.Context, list *view.ListView, detail *view.DetailView, id string, starred bool) error {
	_, err := waitFor(ctx, list.State(), func(r view.Result[view.ListState]) bool {
		for _, repo := range r.Value().Repositories {
			if repo.ID == id {
				return repo.ViewerHasStarred == starred
			}
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("timed out waiting for the list view: %w", err)
	}

	_, err = waitFor(ctx, detail.State(), func(r view.Result[*github.Repository]) bool {
		return r.Value() != nil && r.Value().ViewerHasStarred == starred
	})
	if err != nil {
		return fmt.Errorf("timed out waiting for the detail view: %w", err)
	}
	return nil
}

func (f *Finder) printViews(heading string, list *view.ListView, detail *view.DetailView) {
	f.output.Infof("%s:", heading)
	f.output.Infof("  list view:")
	for _, repo := range list.State().Value().Value().Repositories {
		f.output.Repository(repo)
	}
	f.output.Infof("  detail view:")
	if repo := detail.State().Value().Value(); repo != nil {
		f.output.Detail(*repo)
	}
}

// waitFor returns the first value of o satisfying cond.
func waitFor[T any](ctx context.Context, o *view.Observable[T], cond func(T) bool) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	for v := range o.Watch(ctx) {
		if cond(v) {
			return v, nil
		}
	}

	// The watch channel only closes once ctx is done.
	var zero T
	return zero, ctx.Err()
}
