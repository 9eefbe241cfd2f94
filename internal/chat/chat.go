// Package chat prints user-facing diagnostics the way the host's chat log
// shows them: one line per message, tagged with the plugin prefix.
package chat

import (
	"fmt"
	"io"
)

// Prefix starts every printed line.
const Prefix = "[Boutique] "

// Chat receives user-visible messages.
type Chat interface {
	Print(msg string)
	PrintError(msg string)
}

// Writer prints messages to an io.Writer. Errors go to Err when set,
// otherwise to Out.
type Writer struct {
	Out io.Writer
	Err io.Writer
}

// NewWriter returns a Chat writing to out and errOut.
func NewWriter(out, errOut io.Writer) *Writer {
	return &Writer{Out: out, Err: errOut}
}

// Print writes msg to Out.
func (w *Writer) Print(msg string) {
	w.write(w.Out, msg)
}

// PrintError writes msg to Err.
func (w *Writer) PrintError(msg string) {
	dst := w.Err
	if dst == nil {
		dst = w.Out
	}
	w.write(dst, msg)
}

func (w *Writer) write(dst io.Writer, msg string) {
	if dst == nil {
		return
	}
	fmt.Fprintf(dst, "%s%s\n", Prefix, msg)
}

// Discard drops every message.
var Discard Chat = discard{}

type discard struct{}

func (discard) Print(string)      {}
func (discard) PrintError(string) {}

// Recorder keeps every message in memory.
type Recorder struct {
	Lines  []string
	Errors []string
}

// Print records msg.
func (r *Recorder) Print(msg string) {
	r.Lines = append(r.Lines, msg)
}

// PrintError records msg as an error.
func (r *Recorder) PrintError(msg string) {
	r.Errors = append(r.Errors, msg)
}
