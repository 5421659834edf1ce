// Package spanmap maps schema violations to token-accurate spans by
// parsing the document into an AST that retains source positions.
// goccy/go-yaml handles both YAML and JSON flow syntax, so the same
// traversal serves either serialization.
//
// This is the precise counterpart to the substring heuristic in
// pkg/parser: path resolution is a direct structural walk, immune to
// key collisions and duplicate text, and it knows how wide the erroring
// token is.
package spanmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/jsonls/jsonls/pkg/parser"
	"github.com/jsonls/jsonls/pkg/protocol"
)

// Span is a candidate highlight with a confidence score. Positions are
// zero-based, ready for the protocol.
type Span struct {
	Range      protocol.Range
	Confidence float64 // 0.0 - 1.0
	Reason     string  // short reason why this span was chosen
}

// Map resolves a violation to the best span the AST can offer. The
// boolean is false when the document does not parse or the path cannot
// be anchored anywhere useful; callers fall back to the text heuristic.
func Map(text string, v parser.Violation) (Span, bool) {
	file, err := yamlparser.ParseBytes([]byte(text), 0)
	if err != nil || len(file.Docs) == 0 {
		return Span{}, false
	}
	root := file.Docs[0].Body
	if root == nil {
		return Span{}, false
	}

	node, parent := traverse(root, v.Segments)

	switch v.Kind {
	case parser.KindType:
		if node != nil {
			return nodeSpan(node, 0.95, "type mismatch: highlighting value"), true
		}

	case parser.KindAdditionalProperties:
		// The instance path names the object owning the extra key;
		// the key itself comes from the message.
		if node != nil && v.Property != "" {
			if keyNode := findKeyInMapping(node, v.Property); keyNode != nil {
				return nodeSpan(keyNode, 0.98, "additional property key"), true
			}
		}
		if node != nil {
			return nodeSpan(node, 0.6, "additionalProperties fallback"), true
		}

	case parser.KindRequired:
		// The missing key has no node; anchor on the mapping that
		// should contain it.
		if node != nil {
			return insertionAnchor(node, v.Property), true
		}
		if parent != nil {
			return insertionAnchor(parent, v.Property), true
		}

	default:
		if node != nil {
			return nodeSpan(node, 0.8, "generic mapping"), true
		}
	}

	// Node not found: nearest existing ancestor, then a literal search
	// for the offending property name.
	if span, ok := nearestAncestor(root, v.Segments); ok {
		return span, true
	}
	if v.Property != "" {
		if span, ok := searchPropertyInText(text, v.Property); ok {
			return span, true
		}
	}
	return Span{}, false
}

// traverse walks the AST by decoded pointer segments. It returns the
// node for the final segment and its parent; node is nil when a segment
// does not resolve.
func traverse(root ast.Node, segments []string) (node ast.Node, parent ast.Node) {
	current := root
	for _, segment := range segments {
		parent = current

		switch n := current.(type) {
		case *ast.MappingNode:
			found := false
			for _, value := range n.Values {
				if keyMatches(value.Key, segment) {
					current = value.Value
					found = true
					break
				}
			}
			if !found {
				return nil, parent
			}

		case *ast.MappingValueNode:
			// Single-pair mapping; goccy uses this for one-entry maps.
			if !keyMatches(n.Key, segment) {
				return nil, parent
			}
			current = n.Value

		case *ast.SequenceNode:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(n.Values) {
				return nil, parent
			}
			current = n.Values[idx]

		default:
			return nil, parent
		}
	}
	return current, parent
}

// keyMatches checks whether a mapping key node equals the segment.
func keyMatches(keyNode ast.MapKeyNode, segment string) bool {
	switch key := keyNode.(type) {
	case *ast.StringNode:
		return key.Value == segment
	default:
		if tk := key.GetToken(); tk != nil {
			return tk.Value == segment
		}
		return false
	}
}

// nodeSpan builds a Span covering the node's token.
func nodeSpan(node ast.Node, confidence float64, reason string) Span {
	if tk := node.GetToken(); tk != nil {
		return tokenSpan(tk, confidence, reason)
	}
	return Span{Confidence: confidence * 0.5, Reason: reason + " (no position)"}
}

// tokenSpan converts 1-based token coordinates into a zero-based range
// spanning the token text.
func tokenSpan(tk *token.Token, confidence float64, reason string) Span {
	line := uint32(0)
	if tk.Position.Line > 0 {
		line = uint32(tk.Position.Line - 1)
	}
	col := uint32(0)
	if tk.Position.Column > 0 {
		col = uint32(tk.Position.Column - 1)
	}
	return Span{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + uint32(len(tk.Value))},
		},
		Confidence: confidence,
		Reason:     reason,
	}
}

// findKeyInMapping returns the key node for the named property, or nil.
func findKeyInMapping(node ast.Node, property string) ast.Node {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, value := range n.Values {
			if keyMatches(value.Key, property) {
				return value.Key
			}
		}
	case *ast.MappingValueNode:
		if keyMatches(n.Key, property) {
			return n.Key
		}
	}
	return nil
}

// insertionAnchor picks where a missing property would be inserted in
// the mapping: its first key when present, the mapping token otherwise.
func insertionAnchor(node ast.Node, property string) Span {
	reason := fmt.Sprintf("missing property '%s'", property)
	switch n := node.(type) {
	case *ast.MappingNode:
		if len(n.Values) > 0 {
			return nodeSpan(n.Values[0].Key, 0.75, reason)
		}
	case *ast.MappingValueNode:
		return nodeSpan(n.Key, 0.75, reason)
	}
	return nodeSpan(node, 0.7, reason)
}

// nearestAncestor walks up the path until some prefix resolves.
func nearestAncestor(root ast.Node, segments []string) (Span, bool) {
	for i := len(segments) - 1; i > 0; i-- {
		if node, _ := traverse(root, segments[:i]); node != nil {
			reason := fmt.Sprintf("nearest ancestor at depth %d", i)
			return nodeSpan(node, 0.4, reason), true
		}
	}
	return Span{}, false
}

// searchPropertyInText is the last AST-free resort: the first line
// containing the property name as a key-ish occurrence.
func searchPropertyInText(text, property string) (Span, bool) {
	for lineNum, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, property)
		if idx < 0 {
			continue
		}
		return Span{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(lineNum), Character: uint32(idx)},
				End:   protocol.Position{Line: uint32(lineNum), Character: uint32(idx + len(property))},
			},
			Confidence: 0.6,
			Reason:     fmt.Sprintf("text search match for '%s'", property),
		}, true
	}
	return Span{}, false
}
