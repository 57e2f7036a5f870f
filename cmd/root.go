package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jparise/gh-repos/internal/broadcast"
	"github.com/jparise/gh-repos/internal/config"
	"github.com/jparise/gh-repos/internal/display"
	"github.com/jparise/gh-repos/internal/finder"
	"github.com/jparise/gh-repos/internal/github"
	"github.com/jparise/gh-repos/internal/logger"
	"github.com/jparise/gh-repos/internal/reposync"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var (
	version = "dev"

	// Flags.
	color      = colorAuto
	hyperlinks bool
	configPath string

	settings = config.New()
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gh-repos",
	Short: "Search, view, and star GitHub repositories",
	Long: `gh-repos searches GitHub repositories and manages your stars and
notification subscriptions.

Settings are read from gh-repos.yaml in gh's config directory (or --config),
then from GH_REPOS_* environment variables (for example GH_REPOS_SEARCH_LIMIT),
and finally from flags.

Examples:
  gh repos search android
  gh repos search --sort updated --pages 3 "language:go cli"
  gh repos view cli/cli golang/go
  gh repos star cli/cli
  gh repos subscribe cli/cli --state ignored`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup(cmd.ErrOrStderr())

		c, err := config.Load(settings, configPath)
		if err != nil {
			return err
		}
		logger.SetDebug(c.Debug)
		cfg = c
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Var(&color, "color",
		"colorize output: auto, always, never")
	flags.BoolVar(&hyperlinks, "hyperlinks", false,
		"link repository names to GitHub in supporting terminals")
	flags.StringVar(&configPath, "config", "",
		"read settings from this file")
	flags.Bool("no-cache", false,
		"bypass cache, always fetch fresh data")
	flags.String("cache-dir", "",
		"override cache directory location")
	flags.Duration("cache-ttl", 0,
		"cache search and lookup results for this long (e.g., 5m, 1h)")
	flags.IntP("jobs", "j", 10,
		"maximum concurrent API requests")
	flags.Bool("debug", false,
		"log requests and state changes to stderr")

	bindFlag("cache.disable", flags.Lookup("no-cache"))
	bindFlag("cache.dir", flags.Lookup("cache-dir"))
	bindFlag("cache.ttl", flags.Lookup("cache-ttl"))
	bindFlag("jobs", flags.Lookup("jobs"))
	bindFlag("debug", flags.Lookup("debug"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func colorize() bool {
	switch color {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return term.FromEnv().IsColorEnabled()
	}
}

func newOutput(cmd *cobra.Command) *display.Output {
	return display.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize(), hyperlinks)
}

// newFinder wires the GitHub client, the repository service, and terminal
// output together for a command run against host ("" for gh's default).
func newFinder(cmd *cobra.Command, host string) (*finder.Finder, error) {
	client, err := github.NewClient(github.ClientOptions{
		Host:         host,
		CacheDir:     cfg.Cache.Dir,
		CacheTTL:     cfg.Cache.TTL,
		DisableCache: cfg.Cache.Disable,
	})
	if err != nil {
		return nil, err
	}

	log := slog.Default()
	updates := broadcast.New[github.Repository](cfg.Broadcast.Buffer, log)
	svc := reposync.NewService(client, updates, log)
	return finder.New(newOutput(cmd), svc, client.Viewer, cfg.Jobs, log), nil
}

// bindFlag binds flag to a config key so that an explicit flag overrides the
// config file and environment.
func bindFlag(key string, flag *pflag.Flag) {
	if err := settings.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
