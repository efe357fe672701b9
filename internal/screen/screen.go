// Package screen implements text rendering of the CHIP-8 framebuffer.
package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Options of the screen writer.
type Options struct {
	Lit    string // text of a lit pixel
	Unlit  string // text of an unlit pixel
	Border bool   // frame the screen with a border
}

// DumpOptions renders one character per pixel, used for screen dumps.
var DumpOptions = Options{
	Lit:   "#",
	Unlit: ".",
}

// TerminalOptions renders two block characters per pixel to compensate for
// the aspect ratio of terminal cells.
var TerminalOptions = Options{
	Lit:    "██",
	Unlit:  "  ",
	Border: true,
}

// Writer renders framebuffers as text lines.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new screen writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write renders the framebuffer, one line per display row.
func (w Writer) Write(fb machine.Framebuffer) error {
	border := ""
	if w.options.Border {
		border = "+" + strings.Repeat("-", machine.DisplayWidth*len([]rune(w.options.Lit))) + "+\n"
		if _, err := io.WriteString(w.writer, border); err != nil {
			return fmt.Errorf("writing border: %w", err)
		}
	}

	buf := &strings.Builder{}
	for y := range machine.DisplayHeight {
		buf.Reset()
		if w.options.Border {
			buf.WriteByte('|')
		}
		for x := range machine.DisplayWidth {
			if fb[y][x] {
				buf.WriteString(w.options.Lit)
			} else {
				buf.WriteString(w.options.Unlit)
			}
		}
		if w.options.Border {
			buf.WriteByte('|')
		}
		buf.WriteByte('\n')

		if _, err := io.WriteString(w.writer, buf.String()); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}

	if border != "" {
		if _, err := io.WriteString(w.writer, border); err != nil {
			return fmt.Errorf("writing border: %w", err)
		}
	}
	return nil
}

// String renders the framebuffer using the dump options.
func String(fb machine.Framebuffer) string {
	buf := &strings.Builder{}
	_ = New(buf, DumpOptions).Write(fb)
	return buf.String()
}
