// Package clipboard copies text to the system clipboard, falling back to an
// OSC 52 escape so copying also works over SSH.
package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"

	"github.com/andareed/siftly-trend/logging"
)

var ErrUnavailable = errors.New("clipboard unavailable (no system clipboard and terminal does not support OSC52)")

// Copy puts text on the clipboard.
func Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed, trying OSC52: %v", err)
	}
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return copyOSC52(os.Stdout, tty, text, os.Getenv("TERM"), os.Getenv("TMUX") != "")
}

func copyOSC52(out io.Writer, tty bool, text, term string, inTmux bool) error {
	if !tty || term == "" || strings.EqualFold(term, "dumb") {
		logging.Warnf("Clipboard: OSC52 unavailable (stdout not TTY or TERM=dumb)")
		return ErrUnavailable
	}
	if _, err := osc52Sequence(text, term, inTmux).WriteTo(out); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return err
	}
	logging.Infof("Clipboard: copied via OSC52")
	return nil
}

// osc52Sequence wraps the escape for tmux or screen when they sit in between.
func osc52Sequence(text, term string, inTmux bool) osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case inTmux:
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	return seq
}
