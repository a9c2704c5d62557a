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
	"fmt"
	"strconv"
	"time"
)

const termTimeFormat = "01-02|15:04:05.000"

// writeTimeTermFormat appends t formatted the way the terminal handler
// renders timestamps, avoiding an intermediate allocation from
// time.Format.
func writeTimeTermFormat(buf *bytes.Buffer, t time.Time) {
	buf.Write(t.AppendFormat(nil, termTimeFormat))
}

// appendInt64 appends a decimal rendering of n to dst.
func appendInt64(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return appendUint64(dst, uint64(-n), false)
	}
	return appendUint64(dst, uint64(n), false)
}

// appendUint64 appends n to dst, optionally thousands-grouped with
// commas.
func appendUint64(dst []byte, n uint64, grouped bool) []byte {
	s := strconv.FormatUint(n, 10)
	if !grouped || len(s) <= 3 {
		return append(dst, s...)
	}
	var out bytes.Buffer
	rem := len(s) % 3
	if rem > 0 {
		out.WriteString(s[:rem])
		if len(s) > rem {
			out.WriteByte(',')
		}
	}
	for i := rem; i < len(s); i += 3 {
		out.WriteString(s[i : i+3])
		if i+3 < len(s) {
			out.WriteByte(',')
		}
	}
	return append(dst, out.Bytes()...)
}

// formatValue renders an arbitrary attribute value the way the terminal
// and logfmt handlers do: quoting strings containing spaces, and
// falling back to fmt.Sprintf for everything else.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case error:
		return quoteIfNeeded(val.Error())
	case fmt.Stringer:
		return quoteIfNeeded(val.String())
	case string:
		return quoteIfNeeded(val)
	default:
		return quoteIfNeeded(fmt.Sprintf("%+v", val))
	}
}

func quoteIfNeeded(s string) string {
	needsQuote := false
	for _, r := range s {
		if r == ' ' || r == '"' || r == '\n' || r == '=' {
			needsQuote = true
			break
		}
	}
	if !needsQuote && s != "" {
		return s
	}
	return strconv.Quote(s)
}
