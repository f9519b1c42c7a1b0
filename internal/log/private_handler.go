package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeywords mark attribute keys whose values are always masked.
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "credential", "auth",
}

// uriPassword matches the password part of a URI userinfo.
var uriPassword = regexp.MustCompile(`([A-Za-z][A-Za-z0-9+.-]*://[^/@:\s]*):[^/@\s]*@`)

// PrivateHandler wraps an slog.Handler and rewrites attribute values that
// would expose more about the user than a log line needs.
type PrivateHandler struct {
	handler slog.Handler
	home    string
}

// NewPrivateHandler creates a PrivateHandler wrapping handler. Paths under
// home are shortened to "~"; an empty home disables that rewrite.
// If handler is nil, slog.Default().Handler() is used.
func NewPrivateHandler(handler slog.Handler, home string) *PrivateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home = strings.TrimSuffix(home, "/")
	return &PrivateHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrivateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PrivateHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.scrub(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PrivateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = h.sanitizeAttr(a)
	}
	return &PrivateHandler{handler: h.handler.WithAttrs(sanitized), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PrivateHandler) WithGroup(name string) slog.Handler {
	return &PrivateHandler{handler: h.handler.WithGroup(name), home: h.home}
}

func (h *PrivateHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			sanitized[i] = h.sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.scrub(a.Value.String()))
	case slog.KindAny:
		if ss, ok := a.Value.Any().([]string); ok {
			out := make([]string, len(ss))
			for i, s := range ss {
				out[i] = h.scrub(s)
			}
			return slog.Any(a.Key, out)
		}
	}
	return a
}

// scrub shortens home directory paths and masks URI passwords in s.
func (h *PrivateHandler) scrub(s string) string {
	s = uriPassword.ReplaceAllString(s, "$1:***@")
	if h.home == "" {
		return s
	}
	if s == h.home {
		return "~"
	}
	return strings.ReplaceAll(s, h.home+"/", "~/")
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// NewPrivateLogger creates a new slog.Logger writing text records to w.
// If verbose is true the level is Debug, otherwise Warn.
func NewPrivateLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewPrivateHandler(textHandler, xdg.Home))
}
