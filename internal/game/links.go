package game

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ncruces/zenity"
)

// confirmAndOpen asks before leaving for an external page. A cancelled
// dialog is not an error.
func confirmAndOpen(url, prompt string) error {
	err := zenity.Question(prompt,
		zenity.Title("Night of Mystics"),
		zenity.OKLabel("Open"),
		zenity.CancelLabel("Stay"),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("confirm: %w", err)
	}

	name, args := browserCommand(runtime.GOOS, url)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
