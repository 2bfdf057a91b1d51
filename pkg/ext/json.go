package ext

import (
	"bytes"
	"errors"
)

// ErrNoJSONDocument is returned by TrimJSONPreamble when no line of the input
// starts a JSON object or array.
var ErrNoJSONDocument = errors.New("no JSON document found")

// TrimJSONPreamble returns data starting at the first line that begins with
// "{" or "[", ignoring leading blanks. Anything printed before that line, for
// example log output of the tool that produced the document, is dropped.
func TrimJSONPreamble(data []byte) ([]byte, error) {
	for offset := 0; offset < len(data); {
		line := data[offset:]
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i+1]
		}
		trimmed := bytes.TrimLeft(line, " \t\r")
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			return data[offset+len(line)-len(trimmed):], nil
		}
		offset += len(line)
	}
	return nil, ErrNoJSONDocument
}
