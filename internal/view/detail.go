package view

import (
	"context"

	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/reposync"
)

// DetailView holds a single repository looked up by owner and name.
//
// Its state starts out loading: a successful Result with no repository.
type DetailView struct {
	svc   *reposync.Service
	state *repositoryState
}

// NewDetailView creates a view of owner/name. Nothing is fetched until Load.
func NewDetailView(svc *reposync.Service, owner, name string) *DetailView {
	return &DetailView{
		svc:   svc,
		state: newRepositoryState(svc.Updates, owner, name),
	}
}

// State returns the observable repository state.
func (v *DetailView) State() *Observable[Result[*github.Repository]] {
	return v.state.result
}

// Load fetches the repository, resetting the view to loading first.
func (v *DetailView) Load(ctx context.Context) error {
	v.state.result.Set(Success[*github.Repository](nil))

	repo, err := v.svc.Get(ctx, v.state.owner, v.state.name)
	if err != nil {
		v.state.result.Set(Failure[*github.Repository](err))
		return err
	}
	v.state.result.Set(Success(&repo))
	return nil
}

// Retry loads the repository again after a failure.
func (v *DetailView) Retry(ctx context.Context) error {
	return v.Load(ctx)
}

// ToggleStar flips the viewer's star on the loaded repository and returns
// the starred state GitHub reports. It does nothing while the repository is
// loading or failed to load.
func (v *DetailView) ToggleStar(ctx context.Context) (bool, error) {
	repo := v.state.current()
	if repo == nil {
		return false, nil
	}
	return v.svc.SetStar(ctx, *repo, !repo.ViewerHasStarred)
}

// IsLoading reports whether the repository is being fetched.
func (v *DetailView) IsLoading() bool {
	return v.state.isLoading()
}

// Close stops merging repository updates into the view.
func (v *DetailView) Close() {
	v.state.cancel()
}
