package jsondoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/feichai0017/document-qa/internal/agent/document"
	"github.com/feichai0017/document-qa/internal/models"
)

const strTag = "!!str"

var errInvalidJSON = errors.New("content is not valid JSON")

// Processor renders a JSON document as block-style YAML, which keeps key
// order and nesting while dropping braces and quotes.
type Processor struct {
	indent int
}

func NewProcessor() *Processor {
	return &Processor{indent: 2}
}

func (p *Processor) Format() models.FileType {
	return models.JSON
}

func (p *Processor) Extract(ctx context.Context, content []byte) (string, error) {
	if !json.Valid(content) {
		return "", document.Fail(models.JSON, errInvalidJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	value, err := readValue(dec)
	if err != nil {
		return "", document.Fail(models.JSON, err)
	}

	restore := shieldWideRunes(value)

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(p.indent)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{value}}); err != nil {
		return "", document.Fail(models.JSON, err)
	}
	if err := enc.Close(); err != nil {
		return "", document.Fail(models.JSON, err)
	}

	return strings.TrimSpace(restore.Replace(out.String())), nil
}

// readValue consumes one complete JSON value from dec.
func readValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readObject(dec)
		case '[':
			return readArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: v}, nil
	case json.Number:
		// the decoder may hand back a view of its read buffer
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strings.Clone(string(v))}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func readObject(dec *json.Decoder) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		value, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key}, value)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func readArray(dec *json.Decoder) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for dec.More() {
		value, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, value)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

const (
	privateUseFirst rune = 0xE000
	privateUseLast  rune = 0xF8FF
)

// shieldWideRunes swaps runes above U+FFFF in string scalars for unused
// private-use runes and returns the replacer that swaps them back. The yaml
// emitter writes any 4-byte UTF-8 sequence as a \U escape but emits
// private-use runes verbatim. Runes are left alone once the private-use
// area has no free code point.
func shieldWideRunes(root *yaml.Node) *strings.Replacer {
	used := make(map[rune]bool)
	walkScalars(root, func(n *yaml.Node) {
		for _, r := range n.Value {
			if r >= privateUseFirst && r <= privateUseLast {
				used[r] = true
			}
		}
	})

	placeholders := make(map[rune]rune)
	next := privateUseFirst
	var pairs []string
	walkScalars(root, func(n *yaml.Node) {
		if !hasWideRune(n.Value) {
			return
		}
		n.Value = strings.Map(func(r rune) rune {
			if r <= 0xFFFF {
				return r
			}
			if ph, ok := placeholders[r]; ok {
				return ph
			}
			for next <= privateUseLast && used[next] {
				next++
			}
			if next > privateUseLast {
				return r
			}
			placeholders[r] = next
			pairs = append(pairs, string(next), string(r))
			next++
			return placeholders[r]
		}, n.Value)
	})

	return strings.NewReplacer(pairs...)
}

func hasWideRune(s string) bool {
	for _, r := range s {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}

func walkScalars(n *yaml.Node, fn func(*yaml.Node)) {
	if n.Kind == yaml.ScalarNode {
		fn(n)
		return
	}
	for _, c := range n.Content {
		walkScalars(c, fn)
	}
}
