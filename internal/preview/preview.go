// Package preview renders exported Markdown for reading in a terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/term"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 100

type fdWriter interface {
	Fd() uintptr
}

// TermWidth returns the column count of w when it is a terminal, otherwise
// DefaultWidth.
func TermWidth(w io.Writer) int {
	f, ok := w.(fdWriter)
	if !ok || !term.IsTerminal(f.Fd()) {
		return DefaultWidth
	}
	if width, _, err := term.GetSize(f.Fd()); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// Render formats markdown with the named glamour style, wrapped at width.
// The result ends with exactly one newline.
func Render(markdown string, width int, style string) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// Write prints markdown to w. When styled is true the document is rendered
// for the terminal, otherwise the Markdown source is written unchanged so it
// can be piped or redirected.
func Write(w io.Writer, markdown string, styled bool) error {
	if !styled {
		_, err := io.WriteString(w, markdown)
		return err
	}

	rendered, err := Render(markdown, TermWidth(w), styles.DarkStyle)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
