// Package clipboard copies plain text to the user's clipboard.
//
// The system clipboard is tried first; when it is unavailable (headless
// session, SSH, missing xclip/xsel) the text is sent to the terminal as an
// OSC 52 escape sequence, which most modern terminals honor.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Copier writes text to a primary clipboard and falls back to OSC 52.
type Copier struct {
	// Primary writes to the system clipboard. Nil disables it.
	Primary func(text string) error
	// Fallback receives the OSC 52 sequence. Nil disables the fallback.
	Fallback io.Writer
}

// New returns a Copier using the system clipboard and stderr as fallback.
func New() *Copier {
	c := &Copier{Fallback: os.Stderr}
	if !sysclip.Unsupported {
		c.Primary = sysclip.WriteAll
	}
	return c
}

// Copy writes text to the clipboard. It returns an error only when every
// mechanism failed; callers usually ignore it.
func (c *Copier) Copy(text string) error {
	var primaryErr error
	if c.Primary != nil {
		if primaryErr = c.Primary(text); primaryErr == nil {
			return nil
		}
	} else {
		primaryErr = errors.New("system clipboard unavailable")
	}

	if c.Fallback == nil {
		return primaryErr
	}
	if _, err := osc52.New(text).WriteTo(c.Fallback); err != nil {
		return fmt.Errorf("clipboard: %w; osc52 fallback: %v", primaryErr, err)
	}
	return nil
}

// Copy writes text using the default Copier.
func Copy(text string) error {
	return New().Copy(text)
}
