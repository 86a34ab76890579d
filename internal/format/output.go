package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	FormatJSON = "json"
	FormatEDN  = "edn"
	FormatText = "text"
)

// Write writes a CLI payload in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (human-readable tables; see WriteText)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return WriteJSON(w, v, pretty)
	case FormatEDN:
		return WriteEDN(w, v, pretty)
	case FormatText:
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want json|edn|text)", format)
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// normalize round-trips v through JSON so struct tags decide field names and
// every payload becomes maps, slices and scalars.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	return x, nil
}
