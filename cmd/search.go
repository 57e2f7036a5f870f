package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jparise/gh-repos/internal/finder"
	"github.com/jparise/gh-repos/internal/timeparse"
)

var (
	searchPages        int
	searchAll          bool
	searchMatch        []string
	searchIgnoreCase   bool
	searchCreatedAfter string
	searchPushedWithin string
	searchMine         bool
)

var searchCmd = &cobra.Command{
	Use:   "search [<keyword>...]",
	Short: "Search for repositories",
	Long: `Search for repositories matching the given keywords.

Keywords may include GitHub search qualifiers such as "language:go" or
"topic:cli". Results are fetched one page at a time; use --pages or --all to
fetch more than the first. Without keywords, the configured search.keyword
is used ("Android" by default), listing its most starred repositories.

--match filters results by owner/name with a glob pattern:
  *              Match any characters (e.g., "cli/*")
  ?              Match single character
  [...]          Match character class
  {...}          Match alternatives (e.g., "{cli,golang}/*")

Examples:
  gh repos search
  gh repos search android
  gh repos search --sort forks --order asc "language:rust"
  gh repos search --all --match "golang/*" tools
  gh repos search --pushed-within 2weeks --mine cli
  gh repos search --created-after 2024-01-01 llm`,
	Args: cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if searchPages < 1 {
			return fmt.Errorf("--pages must be at least 1, got %d", searchPages)
		}
		if searchAll && cmd.Flags().Changed("pages") {
			return fmt.Errorf("--all cannot be combined with --pages")
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.IntP("limit", "L", 20,
		"maximum repositories per page (1-100)")
	flags.String("sort", "stars",
		"sort by: stars, forks, created, updated")
	flags.String("order", "desc",
		"sort order: asc, desc")
	flags.IntVar(&searchPages, "pages", 1,
		"number of pages to fetch")
	flags.BoolVar(&searchAll, "all", false,
		"fetch every page")
	flags.StringSliceVarP(&searchMatch, "match", "m", []string{},
		"only show repositories whose owner/name matches (can be specified multiple times)")
	flags.BoolVarP(&searchIgnoreCase, "ignore-case", "i", false,
		"case-insensitive --match")
	flags.StringVar(&searchCreatedAfter, "created-after", "",
		"only repositories created on or after this date (e.g., 2024-01-31)")
	flags.StringVar(&searchPushedWithin, "pushed-within", "",
		"only repositories pushed to within this age (e.g., 12h, 3d, 2weeks, 6mo)")
	flags.BoolVar(&searchMine, "mine", false,
		"only repositories owned by you")

	bindFlag("search.limit", flags.Lookup("limit"))
	bindFlag("search.sort", flags.Lookup("sort"))
	bindFlag("search.order", flags.Lookup("order"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := commandContext(cmd)
	defer stop()

	opts := &finder.SearchOptions{
		Condition:  cfg.SearchCondition(strings.Join(args, " ")),
		Pages:      searchPages,
		All:        searchAll,
		Match:      searchMatch,
		IgnoreCase: searchIgnoreCase,
		Mine:       searchMine,
	}

	if searchCreatedAfter != "" {
		t, err := timeparse.ParseDate(searchCreatedAfter)
		if err != nil {
			return fmt.Errorf("invalid --created-after: %w", err)
		}
		opts.CreatedAfter = &t
	}

	if searchPushedWithin != "" {
		age, err := timeparse.ParseAge(searchPushedWithin)
		if err != nil {
			return fmt.Errorf("invalid --pushed-within: %w", err)
		}
		if age == 0 {
			return fmt.Errorf("--pushed-within must be greater than 0")
		}
		opts.PushedWithin = age
	}

	f, err := newFinder(cmd, "")
	if err != nil {
		return err
	}
	return f.Search(ctx, opts)
}
