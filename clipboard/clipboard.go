// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.Clipboard = (*Command)(nil)

// ErrUnavailable is returned by Detect when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command found (install pbcopy, wl-copy, or xclip)")

// Command implements Clipboard by piping content to an external command.
type Command struct {
	Name string
	Args []string
}

// NewPBCopy returns a clipboard backed by macOS pbcopy.
func NewPBCopy() *Command {
	return &Command{Name: "pbcopy"}
}

// NewWLCopy returns a clipboard backed by Wayland wl-copy.
func NewWLCopy() *Command {
	return &Command{Name: "wl-copy"}
}

// NewXClip returns a clipboard backed by X11 xclip.
func NewXClip() *Command {
	return &Command{Name: "xclip", Args: []string{"-selection", "clipboard"}}
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(content)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Detect returns the first clipboard command found on PATH, trying pbcopy,
// wl-copy, then xclip.
func Detect() (*Command, error) {
	return detect(exec.LookPath)
}

func detect(lookPath func(string) (string, error)) (*Command, error) {
	for _, c := range []*Command{NewPBCopy(), NewWLCopy(), NewXClip()} {
		if _, err := lookPath(c.Name); err == nil {
			return c, nil
		}
	}
	return nil, ErrUnavailable
}
