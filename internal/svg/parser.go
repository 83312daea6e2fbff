// Package svg converts a single SVG document into a normalized element tree
// ready for code emission: class attributes are dropped everywhere, the root
// element additionally loses its size and namespace attributes, attribute
// names are camel-cased, and style elements are excluded entirely.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNoRootElement reports input that contains no <svg> element at all.
var ErrNoRootElement = errors.New("no root <svg> element")

// nsPrefix maps well-known namespace URLs back to their conventional
// prefixes. encoding/xml resolves attribute prefixes to URLs during decode;
// generated output wants the prefixed form (which camelCase then folds).
var nsPrefix = map[string]string{
	"http://www.w3.org/1999/xlink":         "xlink",
	"http://www.w3.org/XML/1998/namespace": "xml",
}

// Parse decodes svgText and returns the normalized tree rooted at the first
// <svg> element. Anything before it (doctype, comments, foreign elements) is
// skipped.
func Parse(svgText string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(svgText))
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrNoRootElement
		}
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "svg" {
			return parseElement(dec, se, true)
		}
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
	}
}

// parseElement builds the node for se and consumes tokens through its end
// element. Children are processed in document order; style subtrees are
// skipped without descending.
func parseElement(dec *xml.Decoder, se xml.StartElement, root bool) (*Node, error) {
	n := &Node{Tag: se.Name.Local}
	for _, a := range se.Attr {
		name := attrName(a.Name)
		if name == "class" {
			continue
		}
		if root && droppedOnRoot(name) {
			continue
		}
		n.Attr = append(n.Attr, Attr{Name: camelCase(name), Value: a.Value})
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "style" {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("decode svg: %w", err)
				}
				continue
			}
			child, err := parseElement(dec, t, false)
			if err != nil {
				return nil, err
			}
			n.Child = append(n.Child, child)
		case xml.EndElement:
			return n, nil
		}
		// Character data, comments, PIs and directives are dropped.
	}
}

// droppedOnRoot reports attributes stripped from the root element only.
// Children keep their own width/height when present.
func droppedOnRoot(name string) bool {
	switch name {
	case "xmlns", "width", "height":
		return true
	}
	return strings.HasPrefix(name, "xmlns:")
}

// attrName reconstructs the source attribute name from the decoded xml.Name.
func attrName(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	default:
		if p, ok := nsPrefix[name.Space]; ok {
			return p + ":" + name.Local
		}
		return name.Local
	}
}

// camelCase folds '-' and ':' separators into camel case: fill-opacity ->
// fillOpacity, xlink:href -> xlinkHref. Values are never touched.
func camelCase(name string) string {
	if !strings.ContainsAny(name, "-:") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		switch {
		case r == '-' || r == ':':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
