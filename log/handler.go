// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// terminalHandler renders log records as human-readable lines: a level
// label, a timestamp, the message padded to a fixed width, then
// key=value attribute pairs.
type terminalHandler struct {
	mu       sync.Mutex
	out      io.Writer
	useColor bool
	level    *slog.LevelVar
	attrs    []slog.Attr
}

// NewTerminalHandler returns a handler enabled for LevelInfo and above.
func NewTerminalHandler(out io.Writer, useColor bool) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelInfo)
	return NewTerminalHandlerWithLevel(out, &lv, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler whose minimum
// level is governed by lv, so callers can adjust verbosity at runtime
// (see admin's loglevel endpoint).
func NewTerminalHandlerWithLevel(out io.Writer, lv *slog.LevelVar, useColor bool) slog.Handler {
	return &terminalHandler{out: out, useColor: useColor, level: lv}
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return levelEnabled(h.level, level)
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(levelString(r.Level))
	buf.WriteString(" [")
	writeTimeTermFormat(&buf, r.Time)
	buf.WriteString("] ")
	msg := r.Message
	if len(msg) < 40 {
		msg += string(bytes.Repeat([]byte{' '}, 40-len(msg)))
	}
	buf.WriteString(msg)

	writeAttr := func(a slog.Attr) {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(a.Value.Any()))
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &terminalHandler{out: h.out, useColor: h.useColor, level: h.level, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *terminalHandler) WithGroup(name string) slog.Handler {
	return h
}

// JSONHandler returns a handler that writes one JSON object per record,
// enabled for LevelDebug and above.
func JSONHandler(out io.Writer) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelDebug)
	return JSONHandlerWithLevel(out, &lv)
}

// JSONHandlerWithLevel returns a JSON handler whose minimum level is
// governed by lv.
func JSONHandlerWithLevel(out io.Writer, lv *slog.LevelVar) slog.Handler {
	return &jsonHandler{out: out, level: lv}
}

type jsonHandler struct {
	mu    sync.Mutex
	out   io.Writer
	level *slog.LevelVar
	attrs []slog.Attr
}

func (h *jsonHandler) Enabled(_ context.Context, level slog.Level) bool {
	return levelEnabled(h.level, level)
}

func (h *jsonHandler) Handle(_ context.Context, r slog.Record) error {
	m := map[string]any{
		"t":   r.Time,
		"lvl": levelString(r.Level),
		"msg": r.Message,
	}
	for _, a := range h.attrs {
		m[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = fmt.Fprintln(h.out, string(b))
	return err
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &jsonHandler{out: h.out, level: h.level, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *jsonHandler) WithGroup(name string) slog.Handler { return h }

// LogfmtHandler returns a handler that writes key=value logfmt lines,
// enabled for LevelDebug and above.
func LogfmtHandler(out io.Writer) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelDebug)
	return &logfmtHandler{out: out, level: &lv}
}

type logfmtHandler struct {
	mu    sync.Mutex
	out   io.Writer
	level *slog.LevelVar
	attrs []slog.Attr
}

func (h *logfmtHandler) Enabled(_ context.Context, level slog.Level) bool {
	return levelEnabled(h.level, level)
}

func (h *logfmtHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "t=%s lvl=%s msg=%s", r.Time.Format(termTimeFormat), levelString(r.Level), formatValue(r.Message))
	for _, a := range h.attrs {
		fmt.Fprintf(&buf, " %s=%s", a.Key, formatValue(a.Value.Any()))
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&buf, " %s=%s", a.Key, formatValue(a.Value.Any()))
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *logfmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logfmtHandler{out: h.out, level: h.level, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *logfmtHandler) WithGroup(name string) slog.Handler { return h }
