package watson

import (
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/watson-tui/watson-tui/internal/model"
)

// Tracker is the command surface of the external watson CLI. All persisted
// time-tracking state lives behind it; the UI never caches tracked time.
type Tracker interface {
	// Start begins a session for project with the given tags. noGap asks
	// watson to backdate the start to the previous session's stop time.
	Start(project string, tags []string, noGap bool) error
	// Stop ends the running session.
	Stop() error
	// Status returns the running session's start time, or nil when idle.
	Status() (*time.Time, error)
	// Projects returns the known project labels.
	Projects() ([]string, error)
	// Tags returns the known tag labels.
	Tags() ([]string, error)
	// Log returns the free-text activity report.
	Log() (string, error)
	// ReportCSV returns the report in CSV form.
	ReportCSV() (string, error)
}

// noSessionMarker is the literal watson prints when no session is running.
const noSessionMarker = "No project started"

// statusTimeLayout matches the parenthesized timestamp in watson status
// output: (YYYY.MM.DD HH:MM:SS±ZZZZ).
const statusTimeLayout = "2006.01.02 15:04:05-0700"

var parenRe = regexp.MustCompile(`\(([^)]*)\)`)

// runFunc invokes the watson binary with args and returns its stdout.
type runFunc func(args ...string) ([]byte, error)

// Client shells out to a watson binary. Calls are synchronous and
// short-lived; there is no background worker.
type Client struct {
	bin string
	run runFunc
}

// NewClient returns a Client that invokes the given watson binary.
func NewClient(bin string) *Client {
	c := &Client{bin: bin}
	c.run = func(args ...string) ([]byte, error) {
		return exec.Command(c.bin, args...).Output()
	}
	return c
}

func (c *Client) Start(project string, tags []string, noGap bool) error {
	args := []string{"start", project}
	for _, tag := range tags {
		args = append(args, "+"+tag)
	}
	if noGap {
		args = append(args, "--no-gap")
	}
	if _, err := c.run(args...); err != nil {
		return &model.ExecutionError{Op: "start", Err: err}
	}
	return nil
}

func (c *Client) Stop() error {
	if _, err := c.run("stop"); err != nil {
		return &model.ExecutionError{Op: "stop", Err: err}
	}
	return nil
}

func (c *Client) Status() (*time.Time, error) {
	out, _ := c.run("status")
	return parseStatus(string(out))
}

func (c *Client) Projects() ([]string, error) {
	out, _ := c.run("projects")
	return splitLabels(string(out)), nil
}

func (c *Client) Tags() ([]string, error) {
	out, _ := c.run("tags")
	return splitLabels(string(out)), nil
}

func (c *Client) Log() (string, error) {
	out, _ := c.run("log")
	return string(out), nil
}

func (c *Client) ReportCSV() (string, error) {
	out, _ := c.run("report", "--csv")
	return string(out), nil
}

// parseStatus extracts the session start time from watson status output.
// The no-session marker wins regardless of any other content. Otherwise
// exactly one parenthesized timestamp is expected; anything else violates
// the output contract.
func parseStatus(out string) (*time.Time, error) {
	if strings.Contains(out, noSessionMarker) {
		return nil, nil
	}
	matches := parenRe.FindAllStringSubmatch(out, -1)
	if len(matches) != 1 {
		return nil, &model.ProtocolError{
			Op:     "status",
			Detail: "expected exactly one (timestamp), found " + strconv.Itoa(len(matches)),
		}
	}
	parsed, err := time.Parse(statusTimeLayout, matches[0][1])
	if err != nil {
		return nil, &model.ProtocolError{Op: "status", Detail: err.Error()}
	}
	// The offset is discarded after parsing: elapsed time is shown against
	// local wall-clock, matching what watson printed.
	local := time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.Local)
	return &local, nil
}

// splitLabels turns newline-separated command output into labels,
// preserving order and dropping blanks.
func splitLabels(out string) []string {
	var labels []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			labels = append(labels, line)
		}
	}
	return labels
}
