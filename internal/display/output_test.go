package display

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jparise/gh-repos/internal/github"
)

func intPtr(n int) *int { return &n }

func testRepository() github.Repository {
	return github.Repository{
		ID:                 "R_1",
		Name:               "cli",
		URL:                "https://github.com/cli/cli",
		Description:        "GitHub's official command line tool",
		StarCount:          36512,
		ForkCount:          5678,
		Owner:              github.Owner{Login: "cli"},
		ViewerSubscription: github.SubscriptionSubscribed,
		Languages:          []github.Language{{Name: "Go"}, {Name: "Shell"}},
	}
}

func TestNewOutput(t *testing.T) {
	tests := []struct {
		name       string
		colorize   bool
		hyperlinks bool
	}{
		{
			name:       "with colors and hyperlinks",
			colorize:   true,
			hyperlinks: true,
		},
		{
			name:       "with colors only",
			colorize:   true,
			hyperlinks: false,
		},
		{
			name:       "without colors or hyperlinks",
			colorize:   false,
			hyperlinks: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := NewOutput(&bytes.Buffer{}, &bytes.Buffer{}, tt.colorize, tt.hyperlinks)
			colorFuncs := []struct {
				name string
				fn   func(string) string
			}{
				{"cyan", output.cyan},
				{"green", output.green},
				{"white", output.white},
				{"yellow", output.yellow},
				{"red", output.red},
				{"gray", output.gray},
			}
			for _, cf := range colorFuncs {
				if cf.fn == nil {
					t.Errorf("NewOutput() %s color func is nil", cf.name)
				}
				s := cf.fn("test")
				if tt.colorize {
					if s == "test" {
						t.Errorf("NewOutput() expected %s color func to return ANSI codes", cf.name)
					}
				} else {
					if s != "test" {
						t.Errorf("NewOutput() expected %s color func to return plain string, got %q", cf.name, s)
					}
				}
			}
		})
	}
}

func TestRepository(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*github.Repository)
		hyperlinks bool
		want       []string
		wantNot    []string
	}{
		{
			name: "summary",
			want: []string{"☆ cli/cli", "36.5K stars", "5.6K forks", "Go", "GitHub's official command line tool"},
		},
		{
			name:   "starred",
			modify: func(r *github.Repository) { r.ViewerHasStarred = true },
			want:   []string{"★ cli/cli"},
		},
		{
			name: "no language or description",
			modify: func(r *github.Repository) {
				r.Languages = nil
				r.Description = ""
				r.StarCount = 12
			},
			want:    []string{"cli/cli", "12 stars"},
			wantNot: []string{"Go"},
		},
		{
			name:       "hyperlinks",
			hyperlinks: true,
			want:       []string{"\033]8;;https://github.com/cli/cli\033\\"},
		},
		{
			name: "long description is truncated",
			modify: func(r *github.Repository) {
				r.Description = strings.Repeat("x", 100)
			},
			wantNot: []string{strings.Repeat("x", 100)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			output := NewOutput(stdout, stderr, false, tt.hyperlinks)

			repo := testRepository()
			if tt.modify != nil {
				tt.modify(&repo)
			}
			output.Repository(repo)
			got := stdout.String()

			if strings.Count(got, "\n") != 1 {
				t.Errorf("Repository() output = %q, want a single line", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Repository() output = %q, want to contain %q", got, w)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(got, w) {
					t.Errorf("Repository() output = %q, want not to contain %q", got, w)
				}
			}
			if stderr.Len() != 0 {
				t.Errorf("Repository() wrote to stderr: %q", stderr.String())
			}
		})
	}
}

func TestDetail(t *testing.T) {
	homepage := "https://cli.github.com"
	repo := testRepository()
	repo.HomepageURL = &homepage
	repo.IssueCount = intPtr(1234)
	repo.PullRequestCount = intPtr(56)
	repo.WatcherCount = intPtr(300)
	repo.ReleaseCount = intPtr(200)
	repo.License = &github.License{Name: "MIT License", Nickname: "MIT"}
	repo.LatestRelease = &github.Release{
		Name:        "GitHub CLI 2.40.0",
		TagName:     "v2.40.0",
		PublishedAt: "2024-01-01T00:00:00Z",
	}
	repo.Topics = []github.Topic{{Name: "cli"}, {Name: "golang"}}

	stdout := &bytes.Buffer{}
	output := NewOutput(stdout, &bytes.Buffer{}, false, false)
	output.now = func() time.Time { return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) }
	output.Detail(repo)
	got := stdout.String()

	for _, w := range []string{
		"☆ cli/cli",
		"GitHub's official command line tool",
		"https://cli.github.com",
		"36,512",
		"1,234",
		"Go, Shell",
		"MIT License",
		"GitHub CLI 2.40.0 (v2.40.0), published about 2 days ago",
		"cli, golang",
		"subscribed",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("Detail() output = %q, want to contain %q", got, w)
		}
	}
	if strings.Contains(got, "Discussions:") {
		t.Errorf("Detail() output = %q, want absent counts omitted", got)
	}
}

func TestDetail_SummaryOnly(t *testing.T) {
	stdout := &bytes.Buffer{}
	output := NewOutput(stdout, &bytes.Buffer{}, false, false)

	repo := testRepository()
	repo.ViewerSubscription = github.SubscriptionNone
	output.Detail(repo)
	got := stdout.String()

	for _, absent := range []string{"Homepage:", "Issues:", "License:", "Latest release:", "Topics:"} {
		if strings.Contains(got, absent) {
			t.Errorf("Detail() output = %q, want not to contain %q", got, absent)
		}
	}
	if !strings.Contains(got, "unknown") {
		t.Errorf("Detail() output = %q, want unknown subscription", got)
	}
}

func TestSubscriptionLabel(t *testing.T) {
	tests := []struct {
		state github.SubscriptionState
		want  string
	}{
		{github.SubscriptionNone, "unknown"},
		{github.SubscriptionIgnored, "ignored"},
		{github.SubscriptionSubscribed, "subscribed"},
		{github.SubscriptionUnsubscribed, "unsubscribed"},
	}
	for _, tt := range tests {
		if got := SubscriptionLabel(tt.state); got != tt.want {
			t.Errorf("SubscriptionLabel(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		write  func(*Output, string, ...any)
		format string
		args   []any
		want   string
	}{
		{
			name:   "warning",
			write:  (*Output).Warningf,
			format: "%s does not exist",
			args:   []any{"owner/repo"},
			want:   "Warning: owner/repo does not exist",
		},
		{
			name:   "error",
			write:  (*Output).Errorf,
			format: "request failed",
			want:   "Error: request failed",
		},
		{
			name:   "info",
			write:  (*Output).Infof,
			format: "showing %d of %d",
			args:   []any{20, 100},
			want:   "showing 20 of 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			output := NewOutput(stdout, stderr, false, false)

			tt.write(output, tt.format, tt.args...)

			if got := stderr.String(); !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want to contain %q", got, tt.want)
			}
			if stdout.Len() != 0 {
				t.Errorf("wrote to stdout: %q", stdout.String())
			}
		})
	}
}

func TestOutputThreadSafety(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false, false)

	const numGoroutines = 10
	const numCalls = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 3)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Repository(testRepository())
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Warningf("warning")
			}
		}()
		go func() {
			defer wg.Done()
			for range numCalls {
				output.Infof("info")
			}
		}()
	}

	wg.Wait()

	stdoutLines := strings.Count(stdout.String(), "\n")
	stderrLines := strings.Count(stderr.String(), "\n")

	if want := numGoroutines * numCalls; stdoutLines != want {
		t.Errorf("stdout lines = %d, want %d", stdoutLines, want)
	}
	if want := numGoroutines * numCalls * 2; stderrLines != want {
		t.Errorf("stderr lines = %d, want %d (Warningf + Infof)", stderrLines, want)
	}
}
