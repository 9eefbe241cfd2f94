package itemsource

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Encodings lists the sheet file encodings Load understands.
var Encodings = []string{"utf-8", "euc-kr", "shift-jis"}

// lookupEncoding resolves a sheet encoding name; nil means UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "euc-kr", "euckr":
		return korean.EUCKR, nil
	case "shift-jis", "shift_jis", "sjis":
		return japanese.ShiftJIS, nil
	default:
		return nil, fmt.Errorf("unsupported sheet encoding %q", name)
	}
}

// toUTF8 converts a sheet exported in a legacy client encoding to UTF-8.
// Pure ASCII input is returned as is.
func toUTF8(data []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil || !hasHighBytes(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding sheet: %w", err)
	}
	return out, nil
}

func hasHighBytes(data []byte) bool {
	return bytes.ContainsFunc(data, func(r rune) bool { return r > 127 })
}
