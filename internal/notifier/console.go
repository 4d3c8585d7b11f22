package notifier

import (
	"fmt"
	"io"
)

// Console writes notifications to a writer instead of the tray app. Used by
// `pulse notify --dry-run` and as a fallback when no tray is installed.
type Console struct {
	Out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

func (c *Console) Dispatch(title, body string) error {
	if body != "" {
		_, err := fmt.Fprintf(c.Out, "[reminder] %s: %s\n", title, body)
		return err
	}
	_, err := fmt.Fprintf(c.Out, "[reminder] %s\n", title)
	return err
}
