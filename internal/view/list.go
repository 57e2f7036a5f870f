package view

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/reposync"
)

// ListState is the accumulated result of a search.
type ListState struct {
	Condition    reposync.SearchCondition
	Repositories []github.Repository

	// Pagination belongs to the most recent page. It is nil until the first
	// page arrives.
	Pagination *reposync.Pagination
}

// ListView accumulates the pages of one search at a time.
type ListView struct {
	svc    *reposync.Service
	logger *slog.Logger
	state  *Observable[Result[ListState]]

	ctx    context.Context
	cancel context.CancelFunc

	// generation identifies the current search. Pages from older searches
	// are dropped.
	generation atomic.Uint64
	loading    atomic.Bool

	mu        sync.Mutex
	condition reposync.SearchCondition
	abandon   chan struct{}
	pending   chan struct{} // closed once the page requested by Next lands
}

// NewListView creates an empty list view. Call Search to populate it.
func NewListView(svc *reposync.Service, logger *slog.Logger) *ListView {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v := &ListView{
		svc:    svc,
		logger: logger,
		state:  NewObservable(Success(ListState{})),
		ctx:    ctx,
		cancel: cancel,
	}
	go follow(svc.Updates(ctx), func(update github.Repository) {
		v.state.Update(func(r Result[ListState]) Result[ListState] {
			if !r.IsSuccess() {
				return r
			}
			s := r.Value()
			s.Repositories = ApplyToList(s.Repositories, update)
			return Success(s)
		})
	})
	return v
}

// State returns the observable list state.
func (v *ListView) State() *Observable[Result[ListState]] {
	return v.state
}

// Search replaces the list with the results of cond. The first page is
// fetched in the background; watch State for it.
func (v *ListView) Search(cond reposync.SearchCondition) {
	v.mu.Lock()
	if v.abandon != nil {
		close(v.abandon)
	}
	abandon := make(chan struct{})
	v.abandon = abandon
	v.condition = cond
	gen := v.generation.Add(1)
	v.settle()
	v.mu.Unlock()

	v.state.Set(Success(ListState{Condition: cond}))

	stream := v.svc.Search(v.ctx, cond)
	go v.consume(gen, stream, abandon)
}

// Retry repeats the last search. It does nothing while a page is loading.
func (v *ListView) Retry() {
	if v.loading.Load() {
		return
	}
	v.mu.Lock()
	cond := v.condition
	v.mu.Unlock()
	v.Search(cond)
}

// Next requests the page following the last one received and returns once
// that page, or the error that ended the search, is part of State. Calls made
// while another is in flight return immediately.
func (v *ListView) Next(ctx context.Context) error {
	if !v.loading.CompareAndSwap(false, true) {
		return nil
	}
	defer v.loading.Store(false)

	gen := v.generation.Load()
	r := v.state.Value()
	if !r.IsSuccess() || r.Value().Pagination == nil || !r.Value().Pagination.HasNext {
		return nil
	}

	pending := make(chan struct{})
	v.mu.Lock()
	if v.generation.Load() != gen {
		v.mu.Unlock()
		return nil
	}
	v.pending = pending
	v.mu.Unlock()

	if err := r.Value().Pagination.Next(ctx); err != nil {
		v.mu.Lock()
		if v.pending == pending {
			v.pending = nil
		}
		v.mu.Unlock()
		return err
	}

	select {
	case <-pending:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-v.ctx.Done():
		return nil
	}
}

// ToggleStar flips the viewer's star on repo and returns the starred state
// GitHub reports.
func (v *ListView) ToggleStar(ctx context.Context, repo github.Repository) (bool, error) {
	return v.svc.SetStar(ctx, repo, !repo.ViewerHasStarred)
}

// IsLoading reports whether the first page of the current search is pending.
func (v *ListView) IsLoading() bool {
	r := v.state.Value()
	return r.IsSuccess() && r.Value().Pagination == nil
}

// Close stops merging repository updates and pages into the view.
func (v *ListView) Close() {
	v.cancel()
}

func (v *ListView) consume(gen uint64, stream *reposync.Stream, abandon <-chan struct{}) {
	for {
		select {
		case <-abandon:
			return
		case <-v.ctx.Done():
			return
		case r, ok := <-stream.Results():
			if !ok {
				v.mu.Lock()
				if v.generation.Load() == gen {
					v.settle()
				}
				v.mu.Unlock()
				return
			}
			v.apply(gen, r)
		}
	}
}

func (v *ListView) apply(gen uint64, r reposync.Result) {
	v.state.Update(func(cur Result[ListState]) Result[ListState] {
		if v.generation.Load() != gen {
			return cur
		}
		// Release Next in the same update that makes the page visible.
		v.mu.Lock()
		v.settle()
		v.mu.Unlock()

		if r.Err != nil {
			v.logger.Debug("dropping search results after failure", "error", r.Err)
			return Failure[ListState](r.Err)
		}

		s := cur.Value()
		s.Condition = r.Page.Condition
		s.Repositories = append(slices.Clone(s.Repositories), r.Page.Repositories...)
		p := r.Page.Pagination
		s.Pagination = &p
		return Success(s)
	})
}

// settle releases a Next waiting on the current search. v.mu must be held.
func (v *ListView) settle() {
	if v.pending != nil {
		close(v.pending)
		v.pending = nil
	}
}
