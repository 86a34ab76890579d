package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes the payload as EDN: JSON objects become maps with keyword keys,
// arrays become vectors.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := normalize(v)
	if err != nil {
		return err
	}
	e := ednWriter{pretty: pretty}
	e.value(x, 0)
	e.buf.WriteByte('\n')
	_, err = w.Write(e.buf.Bytes())
	return err
}

type ednWriter struct {
	buf    bytes.Buffer
	pretty bool
}

func (e *ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case float64:
		// Integral JSON numbers print without a fraction.
		if t == float64(int64(t)) {
			e.buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.open('[', len(t) == 0)
		for i, it := range t {
			e.sep(i, depth+1)
			e.value(it, depth+1)
		}
		e.close(']', len(t) == 0, depth)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.open('{', len(keys) == 0)
		for i, k := range keys {
			e.sep(i, depth+1)
			e.buf.WriteString(ednKeyword(k))
			e.buf.WriteByte(' ')
			e.value(t[k], depth+1)
		}
		e.close('}', len(keys) == 0, depth)
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func (e *ednWriter) open(c byte, empty bool) {
	e.buf.WriteByte(c)
	if e.pretty && !empty {
		e.buf.WriteByte('\n')
	}
}

func (e *ednWriter) sep(i, depth int) {
	if e.pretty {
		if i > 0 {
			e.buf.WriteByte('\n')
		}
		e.buf.WriteString(strings.Repeat("  ", depth))
		return
	}
	if i > 0 {
		e.buf.WriteByte(' ')
	}
}

func (e *ednWriter) close(c byte, empty bool, depth int) {
	if e.pretty && !empty {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	}
	e.buf.WriteByte(c)
}

func ednKeyword(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
	return ":" + s
}
