package reposync

import (
	"fmt"
	"strings"
)

// DefaultLimit is the page size used when a SearchCondition has none.
const DefaultLimit = 20

// Sort is the field search results are ordered by.
type Sort string

const (
	SortCreatedAt  Sort = "created"
	SortForks      Sort = "forks"
	SortStargazers Sort = "stars"
	SortUpdatedAt  Sort = "updated"
)

// ParseSort parses a sort key as accepted on the command line.
func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(s) {
	case "created", "created-at", "createdat":
		return SortCreatedAt, nil
	case "forks":
		return SortForks, nil
	case "stars", "stargazers":
		return SortStargazers, nil
	case "updated", "updated-at", "updatedat":
		return SortUpdatedAt, nil
	default:
		return "", fmt.Errorf("invalid sort %q: must be one of stars, forks, created, or updated", s)
	}
}

// Order is the direction search results are ordered in.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder parses a sort order as accepted on the command line.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("invalid order %q: must be asc or desc", s)
	}
}

// SearchCondition identifies one logical search session.
type SearchCondition struct {
	Keyword string
	Limit   int
	Sort    Sort
	Order   Order
}

// NewSearchCondition returns a condition with the default limit and
// ordering (most stars first).
func NewSearchCondition(keyword string) SearchCondition {
	return SearchCondition{
		Keyword: keyword,
		Limit:   DefaultLimit,
		Sort:    SortStargazers,
		Order:   OrderDesc,
	}
}

// withDefaults fills in zero fields.
func (c SearchCondition) withDefaults() SearchCondition {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.Sort == "" {
		c.Sort = SortStargazers
	}
	if c.Order == "" {
		c.Order = OrderDesc
	}
	return c
}

// SortQualifier returns the value of the search "sort:" qualifier, e.g.
// "stars-desc".
func (c SearchCondition) SortQualifier() string {
	c = c.withDefaults()
	return string(c.Sort) + "-" + string(c.Order)
}

// QueryText returns the GitHub search query for the condition.
func (c SearchCondition) QueryText() string {
	return strings.TrimSpace("sort:" + c.SortQualifier() + " " + c.Keyword)
}
