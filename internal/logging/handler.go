package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler writes records as single lines:
//
//	3:04PM WARN  message key=value group.key="two words"
//
// Colours are used only when the writer is a colour-capable terminal.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	prefix string
	attrs  []byte
	colour bool
}

var _ slog.Handler = (*Handler)(nil)

var (
	timeColour = color.New(color.FgHiBlack)
	keyColour  = color.New(color.FgCyan)
)

// NewHandler creates a text handler on out. A nil opts logs at Info.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{level: slog.LevelInfo, out: out, mu: &sync.Mutex{}, colour: colourEnabled(out)}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Each record is written with one call to
// the underlying writer.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(h.paint(timeColour, r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}
	fmt.Fprintf(&buf, "%s %s", h.paint(levelColour(r.Level), fmt.Sprintf("%-5s", levelLabel(r.Level))), r.Message)
	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler. The attributes are rendered once.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}
	next := *h
	next.attrs = append(append([]byte(nil), h.attrs...), buf.Bytes()...)
	return &next
}

// WithGroup implements slog.Handler. Later keys are qualified as group.key.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *Handler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, p, ga)
		}
		return
	}

	a = redactAttr(a)
	buf.WriteByte(' ')
	buf.WriteString(h.paint(keyColour, prefix+a.Key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.colour || c == nil {
		return s
	}
	return c.Sprint(s)
}

// formatValue quotes values that would otherwise be ambiguous on one line.
func formatValue(v slog.Value) string {
	s := fmt.Sprint(v.Any())
	if v.Kind() == slog.KindString && (s == "" || strings.ContainsAny(s, " \t\n\"=")) {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return l.String()
}

func levelColour(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case l >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case l >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgMagenta)
	}
}
