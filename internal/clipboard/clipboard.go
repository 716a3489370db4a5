// Package clipboard copies text to the system clipboard using whichever
// platform tool is installed.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("clipboard text is empty")

type tool struct {
	name string
	args []string
}

// Copy writes text to the clipboard.
func Copy(text string) error {
	return copyWith(text, runtime.GOOS, exec.LookPath)
}

func copyWith(text, goos string, lookPath func(string) (string, error)) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}

	var tried []string
	for _, t := range tools(goos) {
		if _, err := lookPath(t.name); err != nil {
			continue
		}
		tried = append(tried, t.name)
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	if len(tried) == 0 {
		return fmt.Errorf("no clipboard tool found for %s", goos)
	}
	return fmt.Errorf("clipboard tools failed: %s", strings.Join(tried, ", "))
}

func tools(goos string) []tool {
	switch goos {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "windows":
		return []tool{{name: "cmd", args: []string{"/c", "clip"}}}
	default:
		return []tool{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "clip.exe"},
		}
	}
}
