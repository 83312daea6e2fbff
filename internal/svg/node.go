package svg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Attr is a single retained attribute. Order within a node matches the
// filtered source document order and survives serialization unchanged so
// repeated builds on the same input stay byte-identical.
type Attr struct {
	Name  string
	Value string
}

// Node is one SVG element after attribute filtering and renaming.
// Child is nil (not empty) when the element had no qualifying children,
// which keeps the serialized payload compact.
type Node struct {
	Tag   string
	Attr  []Attr
	Child []*Node
}

// JSON renders the node as a compact JSON literal suitable for embedding in
// generated source. Attribute key order is preserved; the child key is
// omitted when the node has no children.
func (n *Node) JSON() string {
	var b strings.Builder
	n.appendJSON(&b)
	return b.String()
}

func (n *Node) appendJSON(b *strings.Builder) {
	b.WriteString(`{"tag":`)
	b.WriteString(quote(n.Tag))
	b.WriteString(`,"attr":{`)
	for i, a := range n.Attr {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(a.Name))
		b.WriteByte(':')
		b.WriteString(quote(a.Value))
	}
	b.WriteByte('}')
	if n.Child != nil {
		b.WriteString(`,"child":[`)
		for i, c := range n.Child {
			if i > 0 {
				b.WriteByte(',')
			}
			c.appendJSON(b)
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
}

func quote(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		// Strings never fail to marshal; keep the fallback loud just in case.
		return `"` + s + `"`
	}
	return string(out)
}

// MarshalJSON implements json.Marshaler using the stable literal form.
func (n *Node) MarshalJSON() ([]byte, error) {
	return []byte(n.JSON()), nil
}

// UnmarshalJSON decodes the literal form, preserving attribute order.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return n.decode(dec)
}

func (n *Node) decode(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("svg: unexpected token %v in node object", keyTok)
		}
		switch key {
		case "tag":
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			tag, ok := tok.(string)
			if !ok {
				return fmt.Errorf("svg: tag is not a string")
			}
			n.Tag = tag
		case "attr":
			if err := expectDelim(dec, '{'); err != nil {
				return err
			}
			for dec.More() {
				nameTok, err := dec.Token()
				if err != nil {
					return err
				}
				valTok, err := dec.Token()
				if err != nil {
					return err
				}
				name, nok := nameTok.(string)
				val, vok := valTok.(string)
				if !nok || !vok {
					return fmt.Errorf("svg: attr entries must be strings")
				}
				n.Attr = append(n.Attr, Attr{Name: name, Value: val})
			}
			if err := expectDelim(dec, '}'); err != nil {
				return err
			}
		case "child":
			if err := expectDelim(dec, '['); err != nil {
				return err
			}
			for dec.More() {
				child := &Node{}
				if err := child.decode(dec); err != nil {
					return err
				}
				n.Child = append(n.Child, child)
			}
			if err := expectDelim(dec, ']'); err != nil {
				return err
			}
		default:
			return fmt.Errorf("svg: unknown node key %q", key)
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || rune(d) != want {
		return fmt.Errorf("svg: expected %q, got %v", want, tok)
	}
	return nil
}
