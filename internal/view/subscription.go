package view

import (
	"context"
	"sync/atomic"

	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/reposync"
)

// SubscriptionView edits the viewer's notification subscription to a single
// repository. The selection is local until UpdateSubscription sends it.
type SubscriptionView struct {
	svc      *reposync.Service
	state    *repositoryState
	selected *Observable[github.SubscriptionState]
	updating atomic.Bool
}

// NewSubscriptionView creates a view of owner/name. Nothing is fetched until
// Load.
func NewSubscriptionView(svc *reposync.Service, owner, name string) *SubscriptionView {
	return &SubscriptionView{
		svc:      svc,
		state:    newRepositoryState(svc.Updates, owner, name),
		selected: NewObservable(github.SubscriptionNone),
	}
}

// State returns the observable repository state.
func (v *SubscriptionView) State() *Observable[Result[*github.Repository]] {
	return v.state.result
}

// Load fetches the repository and selects its current subscription state.
func (v *SubscriptionView) Load(ctx context.Context) error {
	v.state.result.Set(Success[*github.Repository](nil))

	repo, err := v.svc.Get(ctx, v.state.owner, v.state.name)
	if err != nil {
		v.state.result.Set(Failure[*github.Repository](err))
		v.selected.Set(github.SubscriptionNone)
		return err
	}
	v.state.result.Set(Success(&repo))
	v.selected.Set(repo.ViewerSubscription)
	return nil
}

// Retry loads the repository again after a failure.
func (v *SubscriptionView) Retry(ctx context.Context) error {
	return v.Load(ctx)
}

// SelectSubscription changes the pending selection.
func (v *SubscriptionView) SelectSubscription(state github.SubscriptionState) {
	v.selected.Set(state)
}

// Selected returns the pending selection.
func (v *SubscriptionView) Selected() github.SubscriptionState {
	return v.selected.Value()
}

// UpdateSubscription sends the pending selection to GitHub and returns the
// state GitHub reports. It does nothing when no repository is loaded.
func (v *SubscriptionView) UpdateSubscription(ctx context.Context) (github.SubscriptionState, error) {
	v.updating.Store(true)
	defer v.updating.Store(false)

	repo := v.state.current()
	if repo == nil {
		return github.SubscriptionNone, nil
	}
	return v.svc.SetSubscription(ctx, *repo, v.Selected())
}

// IsUpdating reports whether UpdateSubscription is in flight.
func (v *SubscriptionView) IsUpdating() bool {
	return v.updating.Load()
}

// IsLoading reports whether the repository is being fetched.
func (v *SubscriptionView) IsLoading() bool {
	return v.state.isLoading()
}

// Close stops merging repository updates into the view.
func (v *SubscriptionView) Close() {
	v.state.cancel()
}
