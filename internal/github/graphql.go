package github

// repositoryFields selects the summary fields shared by search results and
// direct lookups.
const repositoryFields = `fragment repositoryFields on Repository {
  id
  name
  url
  description
  stargazerCount
  forkCount
  owner { id login avatarUrl url }
  viewerHasStarred
  viewerSubscription
  languages(first: 10) { nodes { id name color } }
}`

const searchRepositoriesQuery = `query SearchRepositories($query: String!, $type: SearchType!, $first: Int!, $after: String) {
  search(query: $query, type: $type, first: $first, after: $after) {
    repositoryCount
    pageInfo { hasNextPage endCursor }
    nodes { ...repositoryFields }
  }
}
` + repositoryFields

const getRepositoryQuery = `query GetRepository($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    ...repositoryFields
    homepageUrl
    issues { totalCount }
    pullRequests { totalCount }
    watchers { totalCount }
    discussions { totalCount }
    releases(first: 1, orderBy: {field: CREATED_AT, direction: DESC}) {
      totalCount
      nodes { name description tagName publishedAt url }
    }
    licenseInfo { name nickname url }
    repositoryTopics(first: 20) {
      nodes { url topic { name viewerHasStarred stargazerCount } }
    }
  }
}
` + repositoryFields

const addStarMutation = `mutation AddStar($id: ID!) {
  addStar(input: {starrableId: $id}) { starrable { viewerHasStarred } }
}`

const removeStarMutation = `mutation RemoveStar($id: ID!) {
  removeStar(input: {starrableId: $id}) { starrable { viewerHasStarred } }
}`

const updateSubscriptionMutation = `mutation UpdateSubscription($id: ID!, $state: SubscriptionState!) {
  updateSubscription(input: {subscribableId: $id, state: $state}) {
    subscribable { viewerSubscription }
  }
}`

const viewerQuery = `query Viewer { viewer { login } }`

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

// repositoryNode mirrors the repositoryFields fragment plus the detail-only
// fields of getRepositoryQuery.
type repositoryNode struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	Description    string `json:"description"`
	StargazerCount int    `json:"stargazerCount"`
	ForkCount      int    `json:"forkCount"`
	Owner          struct {
		ID        string `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatarUrl"`
		URL       string `json:"url"`
	} `json:"owner"`
	ViewerHasStarred   bool   `json:"viewerHasStarred"`
	ViewerSubscription string `json:"viewerSubscription"`
	Languages          *struct {
		Nodes []*struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Color string `json:"color"`
		} `json:"nodes"`
	} `json:"languages"`

	HomepageURL  *string     `json:"homepageUrl"`
	Issues       *totalCount `json:"issues"`
	PullRequests *totalCount `json:"pullRequests"`
	Watchers     *totalCount `json:"watchers"`
	Discussions  *totalCount `json:"discussions"`
	Releases     *struct {
		TotalCount int `json:"totalCount"`
		Nodes      []*struct {
			Name        *string `json:"name"`
			Description string  `json:"description"`
			TagName     string  `json:"tagName"`
			PublishedAt string  `json:"publishedAt"`
			URL         string  `json:"url"`
		} `json:"nodes"`
	} `json:"releases"`
	LicenseInfo *struct {
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		URL      string `json:"url"`
	} `json:"licenseInfo"`
	RepositoryTopics *struct {
		Nodes []*struct {
			URL   string `json:"url"`
			Topic struct {
				Name             string `json:"name"`
				ViewerHasStarred bool   `json:"viewerHasStarred"`
				StargazerCount   int    `json:"stargazerCount"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

// toRepository converts a GraphQL node into a Repository. Detail fields are
// only set when the node carried them.
func (n *repositoryNode) toRepository() Repository {
	repo := Repository{
		ID:          n.ID,
		Name:        n.Name,
		URL:         n.URL,
		Description: n.Description,
		StarCount:   n.StargazerCount,
		ForkCount:   n.ForkCount,
		Owner: Owner{
			ID:        n.Owner.ID,
			Login:     n.Owner.Login,
			AvatarURL: n.Owner.AvatarURL,
			URL:       n.Owner.URL,
		},
		ViewerHasStarred:   n.ViewerHasStarred,
		ViewerSubscription: ParseSubscriptionState(n.ViewerSubscription),
		HomepageURL:        n.HomepageURL,
	}

	if n.Languages != nil {
		for _, lang := range n.Languages.Nodes {
			if lang == nil {
				continue
			}
			repo.Languages = append(repo.Languages, Language{ID: lang.ID, Name: lang.Name, Color: lang.Color})
		}
	}

	if n.Issues != nil {
		repo.IssueCount = &n.Issues.TotalCount
	}
	if n.PullRequests != nil {
		repo.PullRequestCount = &n.PullRequests.TotalCount
	}
	if n.Watchers != nil {
		repo.WatcherCount = &n.Watchers.TotalCount
	}
	if n.Discussions != nil {
		repo.DiscussionCount = &n.Discussions.TotalCount
	}

	if n.Releases != nil {
		repo.ReleaseCount = &n.Releases.TotalCount
		for _, rel := range n.Releases.Nodes {
			if rel == nil {
				continue
			}
			name := rel.TagName
			if rel.Name != nil && *rel.Name != "" {
				name = *rel.Name
			}
			repo.LatestRelease = &Release{
				Name:        name,
				Description: rel.Description,
				TagName:     rel.TagName,
				PublishedAt: rel.PublishedAt,
				URL:         rel.URL,
			}
			break
		}
	}

	if n.LicenseInfo != nil {
		repo.License = &License{
			Name:     n.LicenseInfo.Name,
			Nickname: n.LicenseInfo.Nickname,
			URL:      n.LicenseInfo.URL,
		}
	}

	if n.RepositoryTopics != nil {
		repo.Topics = make([]Topic, 0, len(n.RepositoryTopics.Nodes))
		for _, node := range n.RepositoryTopics.Nodes {
			if node == nil {
				continue
			}
			repo.Topics = append(repo.Topics, Topic{
				Name:             node.Topic.Name,
				ViewerHasStarred: node.Topic.ViewerHasStarred,
				StarCount:        node.Topic.StargazerCount,
				URL:              node.URL,
			})
		}
	}

	return repo
}
