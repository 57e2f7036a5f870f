package cmd

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/spf13/cobra"

	"github.com/jparise/gh-repos/internal/finder"
	"github.com/jparise/gh-repos/internal/github"
)

var (
	viewWeb           bool
	subscriptionState string
)

var viewCmd = &cobra.Command{
	Use:   "view <repository>...",
	Short: "Show repository details",
	Long: `Show the details of one or more repositories.

<repository> can be OWNER/REPO, HOST/OWNER/REPO, or a repository URL.

Examples:
  gh repos view cli/cli
  gh repos view cli/cli cli/go-gh golang/go
  gh repos view --web cli/cli`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		specs, host, err := parseRepoSpecs(args)
		if err != nil {
			return err
		}
		f, err := newFinder(cmd, host)
		if err != nil {
			return err
		}

		var b finder.Browser
		if viewWeb {
			b = browser.New("", cmd.OutOrStdout(), cmd.ErrOrStderr())
		}
		return f.View(ctx, specs, b)
	},
}

var starCmd = &cobra.Command{
	Use:   "star <repository>...",
	Short: "Star repositories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStar(cmd, args, true)
	},
}

var unstarCmd = &cobra.Command{
	Use:   "unstar <repository>...",
	Short: "Remove stars from repositories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStar(cmd, args, false)
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <repository>",
	Short: "Change notifications for a repository",
	Long: `Change which notifications you receive for a repository.

--state is one of:
  subscribed     Notify on all activity
  unsubscribed   Notify only when participating or mentioned
  ignored        Never notify`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		state, err := parseSubscriptionState(subscriptionState)
		if err != nil {
			return err
		}
		specs, host, err := parseRepoSpecs(args)
		if err != nil {
			return err
		}
		f, err := newFinder(cmd, host)
		if err != nil {
			return err
		}
		return f.Subscribe(ctx, specs[0], state)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <keyword>...",
	Short: "Show a star change reaching every open view",
	Long: `Search for repositories, open the first result in a detail view, and
star it from there. The search list picks up the change without fetching it
again. The star is then toggled back from the list, restoring the original
state, and the detail view follows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := commandContext(cmd)
		defer stop()

		f, err := newFinder(cmd, "")
		if err != nil {
			return err
		}
		return f.Watch(ctx, cfg.SearchCondition(strings.Join(args, " ")))
	},
}

func init() {
	viewCmd.Flags().BoolVarP(&viewWeb, "web", "w", false,
		"open the repositories in the browser")
	subscribeCmd.Flags().StringVar(&subscriptionState, "state", "",
		"subscription state: subscribed, unsubscribed, ignored")
	_ = subscribeCmd.MarkFlagRequired("state")

	rootCmd.AddCommand(viewCmd, starCmd, unstarCmd, subscribeCmd, watchCmd)
}

func runStar(cmd *cobra.Command, args []string, starred bool) error {
	ctx, stop := commandContext(cmd)
	defer stop()

	specs, host, err := parseRepoSpecs(args)
	if err != nil {
		return err
	}
	f, err := newFinder(cmd, host)
	if err != nil {
		return err
	}
	return f.Star(ctx, specs, starred)
}

// parseRepoSpecs parses repository arguments, dropping duplicates while
// preserving order. All repositories must be on the same host, which is
// returned.
func parseRepoSpecs(args []string) ([]finder.RepoSpec, string, error) {
	var host string
	seen := make(map[finder.RepoSpec]bool)
	specs := make([]finder.RepoSpec, 0, len(args))

	for i, arg := range args {
		r, err := repository.Parse(arg)
		if err != nil {
			return nil, "", fmt.Errorf("invalid repository %q: %w", arg, err)
		}
		if i == 0 {
			host = r.Host
		} else if r.Host != host {
			return nil, "", fmt.Errorf("repositories must be on the same host: %s and %s", host, r.Host)
		}

		spec := finder.RepoSpec{Owner: r.Owner, Name: r.Name}
		if !seen[spec] {
			seen[spec] = true
			specs = append(specs, spec)
		}
	}

	return specs, host, nil
}

func parseSubscriptionState(s string) (github.SubscriptionState, error) {
	switch s {
	case "subscribed":
		return github.SubscriptionSubscribed, nil
	case "unsubscribed":
		return github.SubscriptionUnsubscribed, nil
	case "ignored":
		return github.SubscriptionIgnored, nil
	default:
		return github.SubscriptionNone, fmt.Errorf("invalid state %q: must be one of subscribed, unsubscribed, or ignored", s)
	}
}
