package finder

import (
	"time"

	"github.com/jparise/gh-repos/internal/reposync"
)

// RepoSpec names a single repository.
type RepoSpec struct {
	Owner string
	Name  string
}

// String returns the spec in owner/name form.
func (s RepoSpec) String() string {
	return s.Owner + "/" + s.Name
}

// SearchOptions contains all search parameters.
type SearchOptions struct {
	Condition    reposync.SearchCondition
	Pages        int        // number of pages to fetch; ignored when All is set
	All          bool       // fetch every page
	Match        []string   // glob patterns matched against owner/name
	IgnoreCase   bool       // case-insensitive Match
	CreatedAfter *time.Time // only repositories created at or after this time
	PushedWithin time.Duration
	Mine         bool // only repositories owned by the viewer
}
