// Package jsonsrc is BAF's JSON front-end loader (spec.md §6's
// `build_json`). It is the one place in BAF that reaches for the standard
// library instead of a pack dependency: JSON decoding has no domain-specific
// concern a third-party library would serve better here (no schema
// validation, no streaming-scale documents) — see DESIGN.md.
package jsonsrc

import (
	"encoding/json"
	"io"
	"math/big"
	"os"
	"strings"

	"baf/internal/bferr"
	"baf/internal/value"
)

// Load opens path and parses it as JSON source data.
func Load(path string) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return value.Null, bferr.Wrap(bferr.KindParseError, err, "json: open file %q", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses JSON content from r, preserving object key order (using
// json.Decoder's token stream rather than decoding into map[string]any,
// which would lose it) and distinguishing integers from floats by whether
// the source token carries a fractional part or exponent, per spec.md §6.
func Decode(r io.Reader) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return value.Null, bferr.Wrap(bferr.KindParseError, err, "json: decode error")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Null, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Null, nil
	case bool:
		if t {
			return value.IntFromInt64(1), nil
		}
		return value.IntFromInt64(0), nil
	case string:
		return value.Str(t), nil
	case json.Number:
		return numberValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return value.Null, bferr.New(bferr.KindParseError, "json: unexpected delimiter %q", t)
		}
	default:
		return value.Null, bferr.New(bferr.KindParseError, "json: unsupported token %v", tok)
	}
}

func numberValue(n json.Number) value.Value {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, _ := n.Float64()
		return value.Float(f)
	}
	if i, ok := new(big.Int).SetString(s, 10); ok {
		return value.Int(i)
	}
	f, _ := n.Float64()
	return value.Float(f)
}

func decodeArray(dec *json.Decoder) (value.Value, error) {
	var items []value.Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return value.Null, err
		}
		v, err := decodeToken(dec, tok)
		if err != nil {
			return value.Null, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return value.Null, err
	}
	return value.List(items), nil
}

func decodeObject(dec *json.Decoder) (value.Value, error) {
	m := value.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return value.Null, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return value.Null, bferr.New(bferr.KindParseError, "json: object key is not a string")
		}
		v, err := decodeValue(dec)
		if err != nil {
			return value.Null, err
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return value.Null, err
	}
	return m.Build(), nil
}
