// Package clipboard copies report text to the system clipboard using
// whichever command-line tool the platform provides.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool available")

type tool struct {
	name string
	args []string
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// candidates lists clipboard tools for goos in order of preference.
func candidates(goos string) []tool {
	switch goos {
	case "darwin":
		return []tool{{"pbcopy", nil}}
	case "windows":
		return []tool{{"clip", nil}}
	default:
		// Wayland first, then the X11 tools
		return []tool{
			{"wl-copy", nil},
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
	}
}

// Command returns the first installed clipboard tool for goos.
func Command(goos string) (string, []string, error) {
	for _, t := range candidates(goos) {
		if _, err := lookPath(t.name); err == nil {
			return t.name, t.args, nil
		}
	}
	return "", nil, fmt.Errorf("%w on %s", ErrUnavailable, goos)
}

// Write copies text to the system clipboard.
func Write(text string) error {
	name, args, err := Command(runtime.GOOS)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", name, err, bytes.TrimSpace(out))
	}
	return nil
}

// Available checks if clipboard functionality is available.
func Available() bool {
	_, _, err := Command(runtime.GOOS)
	return err == nil
}
