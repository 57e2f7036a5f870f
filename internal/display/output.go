// Package display renders repositories for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/text"
	"github.com/mgutz/ansi"

	"github.com/jparise/gh-repos/internal/github"
)

const (
	descriptionWidth = 60
	labelWidth       = 15
)

// Output handles all output formatting with optional color and hyperlink support.
type Output struct {
	mu         sync.Mutex
	stdout     io.Writer
	stderr     io.Writer
	hostname   string
	hyperlinks bool
	now        func() time.Time

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
	gray   func(string) string
}

// NewOutput creates a new Output with optional color and hyperlink support.
func NewOutput(stdout, stderr io.Writer, colorize, hyperlinks bool) *Output {
	hostname, _ := auth.DefaultHost()

	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:     stdout,
		stderr:     stderr,
		hostname:   hostname,
		hyperlinks: hyperlinks,
		now:        time.Now,
		cyan:       color("cyan"),
		green:      color("green+b"),
		white:      color("white+b"),
		yellow:     color("yellow"),
		red:        color("red+b"),
		gray:       color("black+h"),
	}
}

func makeHyperlink(url, text string) string {
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

func (o *Output) link(url, text string) string {
	if !o.hyperlinks || url == "" {
		return text
	}
	return makeHyperlink(url, text)
}

func (o *Output) repositoryURL(repo github.Repository) string {
	if repo.URL != "" {
		return repo.URL
	}
	return fmt.Sprintf("https://%s/%s", o.hostname, repo.FullName())
}

func (o *Output) name(repo github.Repository) string {
	name := fmt.Sprintf("%s/%s", o.cyan(repo.Owner.Login), o.green(repo.Name))
	return o.link(o.repositoryURL(repo), name)
}

func (o *Output) star(repo github.Repository) string {
	if repo.ViewerHasStarred {
		return o.yellow("★")
	}
	return "☆"
}

// Repository writes a one-line summary of repo:
// ★ owner/name  1.2K stars  34 forks  Go  description
func (o *Output) Repository(repo github.Repository) {
	o.mu.Lock()
	defer o.mu.Unlock()

	fields := []string{
		o.star(repo) + " " + o.name(repo),
		WithSuffix(repo.StarCount) + " stars",
		WithSuffix(repo.ForkCount) + " forks",
	}
	if len(repo.Languages) > 0 {
		fields = append(fields, repo.Languages[0].Name)
	}
	if repo.Description != "" {
		fields = append(fields, o.gray(text.Truncate(descriptionWidth, repo.Description)))
	}

	fmt.Fprintln(o.stdout, strings.Join(fields, "  "))
}

// Detail writes everything known about repo. Fields only populated by a
// direct lookup are omitted when absent.
func (o *Output) Detail(repo github.Repository) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", o.star(repo), o.name(repo))
	if repo.Description != "" {
		fmt.Fprintf(&b, "%s\n", repo.Description)
	}
	b.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", o.white(text.PadRight(labelWidth, label+":")), value)
	}
	count := func(label string, n *int) {
		if n != nil {
			row(label, WithComma(*n))
		}
	}

	if repo.HomepageURL != nil && *repo.HomepageURL != "" {
		row("Homepage", o.link(*repo.HomepageURL, *repo.HomepageURL))
	}
	row("Stars", WithComma(repo.StarCount))
	row("Forks", WithComma(repo.ForkCount))
	count("Watchers", repo.WatcherCount)
	count("Issues", repo.IssueCount)
	count("Pull requests", repo.PullRequestCount)
	count("Discussions", repo.DiscussionCount)
	count("Releases", repo.ReleaseCount)

	if len(repo.Languages) > 0 {
		names := make([]string, len(repo.Languages))
		for i, lang := range repo.Languages {
			names[i] = lang.Name
		}
		row("Languages", strings.Join(names, ", "))
	}
	if repo.License != nil {
		row("License", o.link(repo.License.URL, repo.License.Name))
	}
	if r := repo.LatestRelease; r != nil {
		release := r.Name
		if r.TagName != "" && r.TagName != r.Name {
			release += " (" + r.TagName + ")"
		}
		if published, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
			release += ", published " + text.RelativeTimeAgo(o.now(), published)
		}
		row("Latest release", o.link(r.URL, release))
	}
	if len(repo.Topics) > 0 {
		names := make([]string, len(repo.Topics))
		for i, topic := range repo.Topics {
			names[i] = o.link(topic.URL, topic.Name)
		}
		row("Topics", strings.Join(names, ", "))
	}
	row("Subscription", SubscriptionLabel(repo.ViewerSubscription))

	fmt.Fprint(o.stdout, b.String())
}

// SubscriptionLabel returns the lowercase name of state, or "unknown".
func SubscriptionLabel(state github.SubscriptionState) string {
	if state == github.SubscriptionNone {
		return "unknown"
	}
	return strings.ToLower(string(state))
}

// Errorf writes a formatted error message to stderr.
func (o *Output) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.red("Error: ")+format+"\n", args...)
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
