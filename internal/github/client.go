// Package github provides the GitHub GraphQL client used by gh-repos.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/shurcooL/githubv4"
)

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	AuthToken string
	Host      string
	CacheDir  string
	// CacheTTL enables response caching for queries when positive.
	// Mutations are never cached.
	CacheTTL     time.Duration
	DisableCache bool
}

// Client wraps the go-gh GraphQL client.
type Client struct {
	query  *api.GraphQLClient
	mutate *api.GraphQLClient
}

// NewClient creates a new GitHub API client with the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	queryOpts := api.ClientOptions{
		AuthToken:   opts.AuthToken,
		Host:        opts.Host,
		CacheDir:    opts.CacheDir,
		CacheTTL:    opts.CacheTTL,
		EnableCache: !opts.DisableCache && opts.CacheTTL > 0,
	}

	query, err := api.NewGraphQLClient(queryOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// go-gh caches every POST to /graphql, so mutations need their own
	// uncached client.
	mutateOpts := queryOpts
	mutateOpts.EnableCache = false
	mutate, err := api.NewGraphQLClient(mutateOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &Client{
		query:  query,
		mutate: mutate,
	}, nil
}

// SearchRepositories runs a repository search and returns one page of results.
// after is the cursor returned with the previous page, or "" for the first page.
func (c *Client) SearchRepositories(ctx context.Context, query string, limit int, after string) (*SearchPage, error) {
	variables := map[string]interface{}{
		"query": query,
		"type":  githubv4.SearchTypeRepository,
		"first": limit,
		"after": nil,
	}
	if after != "" {
		variables["after"] = after
	}

	var response struct {
		Search *struct {
			RepositoryCount int `json:"repositoryCount"`
			PageInfo        struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
			Nodes []*repositoryNode `json:"nodes"`
		} `json:"search"`
	}

	if err := c.query.DoWithContext(ctx, searchRepositoriesQuery, variables, &response); err != nil {
		return nil, queryError(err)
	}

	if response.Search == nil {
		return &SearchPage{}, nil
	}

	page := &SearchPage{
		Repositories: make([]Repository, 0, len(response.Search.Nodes)),
		TotalCount:   response.Search.RepositoryCount,
		HasNext:      response.Search.PageInfo.HasNextPage,
	}
	if response.Search.PageInfo.EndCursor != nil {
		page.EndCursor = *response.Search.PageInfo.EndCursor
	}

	for _, node := range response.Search.Nodes {
		// Non-repository search results decode as empty nodes.
		if node == nil || node.ID == "" {
			continue
		}
		page.Repositories = append(page.Repositories, node.toRepository())
	}

	// A cursor GitHub no longer recognizes yields no nodes; treat it as the
	// end of the result set rather than paging forever.
	if len(page.Repositories) == 0 {
		page.HasNext = false
		page.EndCursor = ""
	}

	return page, nil
}

// GetRepository fetches a single repository including its detail fields.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (Repository, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return Repository{}, &NotFoundError{Owner: owner, Name: name}
	}

	variables := map[string]interface{}{
		"owner": owner,
		"name":  name,
	}

	var response struct {
		Repository *repositoryNode `json:"repository"`
	}

	if err := c.query.DoWithContext(ctx, getRepositoryQuery, variables, &response); err != nil {
		if isNotFoundResponse(err) {
			return Repository{}, &NotFoundError{Owner: owner, Name: name}
		}
		return Repository{}, queryError(err)
	}

	if response.Repository == nil {
		return Repository{}, &NotFoundError{Owner: owner, Name: name}
	}

	return response.Repository.toRepository(), nil
}

// AddStar stars the repository with the given node ID and returns the
// viewer's starred state as reported by GitHub.
func (c *Client) AddStar(ctx context.Context, id string) (bool, error) {
	var response struct {
		AddStar struct {
			Starrable struct {
				ViewerHasStarred bool `json:"viewerHasStarred"`
			} `json:"starrable"`
		} `json:"addStar"`
	}

	variables := map[string]interface{}{"id": id}
	if err := c.mutate.DoWithContext(ctx, addStarMutation, variables, &response); err != nil {
		return false, &MutationError{Op: "star", ID: id, Err: err}
	}

	return response.AddStar.Starrable.ViewerHasStarred, nil
}

// RemoveStar unstars the repository with the given node ID and returns the
// viewer's starred state as reported by GitHub.
func (c *Client) RemoveStar(ctx context.Context, id string) (bool, error) {
	var response struct {
		RemoveStar struct {
			Starrable struct {
				ViewerHasStarred bool `json:"viewerHasStarred"`
			} `json:"starrable"`
		} `json:"removeStar"`
	}

	variables := map[string]interface{}{"id": id}
	if err := c.mutate.DoWithContext(ctx, removeStarMutation, variables, &response); err != nil {
		return false, &MutationError{Op: "unstar", ID: id, Err: err}
	}

	return response.RemoveStar.Starrable.ViewerHasStarred, nil
}

// UpdateSubscription changes the viewer's notification subscription and
// returns the state GitHub reports afterwards.
func (c *Client) UpdateSubscription(ctx context.Context, id string, state SubscriptionState) (SubscriptionState, error) {
	if state == SubscriptionNone {
		return SubscriptionNone, &MutationError{
			Op:  "update subscription for",
			ID:  id,
			Err: fmt.Errorf("subscription state must be set"),
		}
	}

	var response struct {
		UpdateSubscription struct {
			Subscribable struct {
				ViewerSubscription string `json:"viewerSubscription"`
			} `json:"subscribable"`
		} `json:"updateSubscription"`
	}

	variables := map[string]interface{}{
		"id":    id,
		"state": githubv4.SubscriptionState(state),
	}
	if err := c.mutate.DoWithContext(ctx, updateSubscriptionMutation, variables, &response); err != nil {
		return SubscriptionNone, &MutationError{Op: "update subscription for", ID: id, Err: err}
	}

	return ParseSubscriptionState(response.UpdateSubscription.Subscribable.ViewerSubscription), nil
}

// Viewer returns the login of the authenticated user.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	var response struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}

	if err := c.query.DoWithContext(ctx, viewerQuery, nil, &response); err != nil {
		return "", queryError(err)
	}

	return response.Viewer.Login, nil
}
