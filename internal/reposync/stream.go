package reposync

import (
	"context"
	"errors"
	"sync"

	"github.com/jparise/gh-repos/internal/github"
)

var (
	// ErrStalePagination is returned by Pagination.Next when a newer page of
	// the same stream has already been fetched, or the stream has ended.
	ErrStalePagination = errors.New("pagination is no longer current")

	// ErrNoSubscriptionState is returned when asked to set the unknown
	// subscription state.
	ErrNoSubscriptionState = errors.New("subscription state must be set")
)

// Result is one increment emitted by a Stream: either a page or the error
// that ended the stream.
type Result struct {
	Page *Page
	Err  error
}

// Page is one increment of a search. Repositories holds only the items
// fetched by this increment; consumers accumulate them.
type Page struct {
	Condition    SearchCondition
	Repositories []github.Repository
	Pagination   Pagination
}

// Pagination requests the page following the one it was returned with.
type Pagination struct {
	Count   int  // total number of results for the condition
	HasNext bool // false once the last page has been fetched

	stream *Stream
	cursor string
	seq    int
}

// Next fetches the following page and emits it on the stream. It is a no-op
// when HasNext is false.
//
// Next is only valid on the most recently emitted page; older handles return
// ErrStalePagination without contacting GitHub. Callers should not invoke
// Next again while a previous call is still in flight.
func (p Pagination) Next(ctx context.Context) error {
	if !p.HasNext || p.stream == nil {
		return nil
	}
	return p.stream.advance(ctx, p.seq, p.cursor)
}

// Stream is a forward-only, resumable sequence of search result pages for a
// single condition. The Results channel is closed after the last page or
// after an error.
type Stream struct {
	svc       *Service
	condition SearchCondition
	results   chan Result

	// mu serializes fetches so a page is never requested before the cursor
	// of the page preceding it is known.
	mu   sync.Mutex
	seq  int
	done bool
}

// Search starts a search for cond and returns its stream. The first page is
// fetched in the background.
func (s *Service) Search(ctx context.Context, cond SearchCondition) *Stream {
	st := &Stream{
		svc:       s,
		condition: cond.withDefaults(),
		results:   make(chan Result, 1),
	}

	go func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		st.fetch(ctx, "")
	}()

	return st
}

// Condition returns the condition the stream was started with.
func (st *Stream) Condition() SearchCondition {
	return st.condition
}

// Results returns the channel pages are emitted on.
func (st *Stream) Results() <-chan Result {
	return st.results
}

func (st *Stream) advance(ctx context.Context, seq int, cursor string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.done || seq != st.seq {
		return ErrStalePagination
	}
	st.fetch(ctx, cursor)
	return nil
}

// fetch requests the page after cursor and emits it. st.mu must be held.
//
// A page that cannot be emitted before ctx is done is dropped, and the stream
// stays where it was: the handle that requested it can ask again.
func (st *Stream) fetch(ctx context.Context, cursor string) {
	page, err := st.svc.searchPage(ctx, st.condition, cursor)
	if err != nil {
		st.emit(ctx, Result{Err: err})
		st.finish()
		return
	}

	hasNext := page.HasNext && page.EndCursor != ""

	seq := st.seq + 1
	emitted := st.emit(ctx, Result{Page: &Page{
		Condition:    st.condition,
		Repositories: page.Repositories,
		Pagination: Pagination{
			Count:   page.TotalCount,
			HasNext: hasNext,
			stream:  st,
			cursor:  page.EndCursor,
			seq:     seq,
		},
	}})
	if !emitted {
		return
	}

	st.seq = seq
	if !hasNext {
		st.finish()
	}
}

func (st *Stream) emit(ctx context.Context, r Result) bool {
	select {
	case st.results <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

func (st *Stream) finish() {
	st.done = true
	close(st.results)
}
