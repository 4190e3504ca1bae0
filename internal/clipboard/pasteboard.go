package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrChangeCountUnsupported is returned by pasteboards that cannot report a
// change counter. The watcher falls back to comparing raw contents.
var ErrChangeCountUnsupported = errors.New("clipboard: change count not supported")

// Pasteboard abstracts the system clipboard so the watcher can be driven by
// a fake in tests.
type Pasteboard interface {
	// ChangeCount returns a counter that increments whenever the clipboard
	// contents change, or ErrChangeCountUnsupported.
	ChangeCount() (int64, error)
	// Text returns the current clipboard contents as plain text.
	Text() (string, error)
}

// SystemPasteboard shells out to the platform clipboard tool. It probes the
// usual suspects once and sticks with the first one that exists.
type SystemPasteboard struct {
	readCmd  []string
	countCmd []string
}

var pasteboardTools = []struct {
	binary string
	read   []string
	count  []string
}{
	{"pbpaste", []string{"pbpaste"}, []string{"osascript", "-e", "the modification date of the pasteboard"}},
	{"wl-paste", []string{"wl-paste", "--no-newline"}, nil},
	{"xclip", []string{"xclip", "-selection", "clipboard", "-o"}, nil},
	{"xsel", []string{"xsel", "--clipboard", "--output"}, nil},
}

// NewSystemPasteboard locates a clipboard tool on PATH.
func NewSystemPasteboard() (*SystemPasteboard, error) {
	for _, tool := range pasteboardTools {
		if _, err := exec.LookPath(tool.binary); err == nil {
			return &SystemPasteboard{readCmd: tool.read, countCmd: tool.count}, nil
		}
	}
	return nil, errors.New("clipboard: no clipboard tool found on PATH")
}

func (p *SystemPasteboard) ChangeCount() (int64, error) {
	if len(p.countCmd) == 0 {
		return 0, ErrChangeCountUnsupported
	}
	out, err := exec.Command(p.countCmd[0], p.countCmd[1:]...).Output()
	if err != nil {
		return 0, fmt.Errorf("clipboard: change count: %w", err)
	}
	// The command output is opaque; hash-by-value is enough to detect change.
	return hashString(strings.TrimSpace(string(out))), nil
}

func (p *SystemPasteboard) Text() (string, error) {
	out, err := exec.Command(p.readCmd[0], p.readCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("clipboard: read: %w", err)
	}
	return string(out), nil
}

func hashString(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	var h int64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= int64(s[i])
		h *= 1099511628211
	}
	return h
}
