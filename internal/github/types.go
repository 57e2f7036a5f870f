package github

import "github.com/shurcooL/githubv4"

// SubscriptionState is the viewer's notification subscription to a repository.
type SubscriptionState string

const (
	// SubscriptionNone means the state is unknown. It is never sent to GitHub.
	SubscriptionNone         SubscriptionState = ""
	SubscriptionIgnored      SubscriptionState = SubscriptionState(githubv4.SubscriptionStateIgnored)
	SubscriptionSubscribed   SubscriptionState = SubscriptionState(githubv4.SubscriptionStateSubscribed)
	SubscriptionUnsubscribed SubscriptionState = SubscriptionState(githubv4.SubscriptionStateUnsubscribed)
)

// ParseSubscriptionState maps a GraphQL enum value to a SubscriptionState.
// Unrecognized values map to SubscriptionNone.
func ParseSubscriptionState(s string) SubscriptionState {
	switch SubscriptionState(s) {
	case SubscriptionIgnored, SubscriptionSubscribed, SubscriptionUnsubscribed:
		return SubscriptionState(s)
	default:
		return SubscriptionNone
	}
}

// Owner is the user or organization that owns a repository.
type Owner struct {
	ID        string
	Login     string
	AvatarURL string
	URL       string
}

// Language is one of a repository's detected languages.
type Language struct {
	ID    string
	Name  string
	Color string // empty when GitHub has no color for the language
}

// Release describes a repository's latest release.
type Release struct {
	Name        string
	Description string
	TagName     string
	PublishedAt string
	URL         string
}

// License describes a repository's detected license.
type License struct {
	Name     string
	Nickname string
	URL      string
}

// Topic is a repository topic.
type Topic struct {
	Name             string
	ViewerHasStarred bool
	StarCount        int
	URL              string
}

// Repository represents a GitHub repository as seen by the viewer.
//
// Repositories returned by search only carry the summary fields. The detail
// fields (HomepageURL through Topics) are populated by GetRepository and are
// nil otherwise.
type Repository struct {
	ID                 string
	Name               string
	URL                string
	Description        string
	StarCount          int
	ForkCount          int
	Owner              Owner
	ViewerHasStarred   bool
	ViewerSubscription SubscriptionState
	Languages          []Language

	HomepageURL      *string
	IssueCount       *int
	PullRequestCount *int
	WatcherCount     *int
	DiscussionCount  *int
	ReleaseCount     *int
	LatestRelease    *Release
	License          *License
	Topics           []Topic
}

// FullName returns the repository's owner/name.
func (r Repository) FullName() string {
	return r.Owner.Login + "/" + r.Name
}

// HasSubscription reports whether the viewer is subscribed to all activity.
func (r Repository) HasSubscription() bool {
	return r.ViewerSubscription == SubscriptionSubscribed
}

// SearchPage is one page of repository search results.
type SearchPage struct {
	Repositories []Repository
	TotalCount   int  // size of the whole result set, stable across pages
	HasNext      bool // false on the terminal page
	EndCursor    string
}
