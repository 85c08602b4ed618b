package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// sourceHandler attaches the caller location to records at or above
// minLevel. The location comes from the record's PC, so callers must set it
// to the real call site.
type sourceHandler struct {
	next     slog.Handler
	minLevel slog.Leveler
}

func newSourceHandler(next slog.Handler, minLevel slog.Leveler) slog.Handler {
	return &sourceHandler{next: next, minLevel: minLevel}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.PC != 0 && r.Level >= h.minLevel.Level() {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		r.AddAttrs(slog.String(slog.SourceKey, shortSource(f.File, f.Line)))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{next: h.next.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), minLevel: h.minLevel}
}

// shortSource keeps the package directory and file name.
func shortSource(file string, line int) string {
	dir, name := filepath.Split(file)
	pkg := filepath.Base(dir)
	if pkg == "." || pkg == string(filepath.Separator) {
		return name + ":" + strconv.Itoa(line)
	}
	return pkg + "/" + name + ":" + strconv.Itoa(line)
}
