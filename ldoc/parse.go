package ldoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Parse decodes data, the textual interchange form, into a Node, per §6.
// It fails with ParseKind on invalid UTF-8, a syntax error, an unescaped
// control character, or nesting past the configured max depth. An empty
// (or all-whitespace) document yields Null.
func Parse(data []byte, opts ...ParseOption) (Node, error) {
	cfg := defaultParseConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if !utf8.Valid(data) {
		return nil, newParseError("invalid UTF-8", nil)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Null{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := parseToken(dec, cfg.maxDepth, 0)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, newParseError("trailing content after document", nil)
		}
		return nil, wrapDecodeErr(err)
	}
	return node, nil
}

func parseToken(dec *json.Decoder, maxDepth, depth int) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, wrapDecodeErr(err)
	}
	return buildNode(tok, dec, maxDepth, depth)
}

func buildNode(tok json.Token, dec *json.Decoder, maxDepth, depth int) (Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, maxDepth, depth)
		case '[':
			return parseArray(dec, maxDepth, depth)
		default:
			return nil, newParseError(fmt.Sprintf("unexpected delimiter %q", t), nil)
		}
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, newParseError("invalid number literal", err)
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, newParseError(fmt.Sprintf("unexpected token %v", tok), nil)
	}
}

func parseObject(dec *json.Decoder, maxDepth, depth int) (Node, error) {
	if depth+1 > maxDepth {
		return nil, newParseError("max depth exceeded", nil)
	}
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, wrapDecodeErr(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, newParseError("object key must be a string", nil)
		}
		val, err := parseToken(dec, maxDepth, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, wrapDecodeErr(err)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, maxDepth, depth int) (Node, error) {
	if depth+1 > maxDepth {
		return nil, newParseError("max depth exceeded", nil)
	}
	arr := Array{}
	for dec.More() {
		val, err := parseToken(dec, maxDepth, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, wrapDecodeErr(err)
	}
	return arr, nil
}

func wrapDecodeErr(err error) error {
	if err == nil {
		return nil
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return newParseError("syntax error", err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return newParseError("unexpected end of document", err)
	}
	return newParseError("decode failed", err)
}
