package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// yaml11Bools are the plain scalars YAML 1.1 resolves to booleans. yaml.v3
// follows YAML 1.2 and leaves them as strings, but vault notes are commonly
// written against 1.1 tooling.
var yaml11Bools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"no": false, "No": false, "NO": false,
	"on": true, "On": true, "ON": true,
	"off": false, "Off": false, "OFF": false,
}

// yaml11Float matches the plain scalars YAML 1.1 resolves to floats: a dot is
// required and an exponent must be signed.
var yaml11Float = regexp.MustCompile(`^(?:[-+]?[0-9][0-9_]*\.[0-9_]*(?:[eE][-+][0-9]+)?` +
	`|[-+]?\.[0-9_]+(?:[eE][-+][0-9]+)?` +
	`|[-+]?\.(?:inf|Inf|INF)` +
	`|\.(?:nan|NaN|NAN))$`)

// ParseYAML parses raw YAML front matter (without --- delimiters) into an
// ordered mapping.
//
// An empty or null document yields a nil mapping and no error. A document
// whose root is not a mapping is an error. Nested mappings are flattened into
// dotted keys.
func ParseYAML(raw []byte) (*Metadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter must be a mapping, got %s", nodeKindName(root))
	}

	md := NewMetadata()
	if err := flattenMapping(md, "", root); err != nil {
		return nil, err
	}
	return md, nil
}

func flattenMapping(md *Metadata, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := resolveAlias(node.Content[i+1])

		if keyNode.ShortTag() == "!!merge" {
			if err := flattenMerge(md, prefix, valNode); err != nil {
				return err
			}
			continue
		}

		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}

		switch valNode.Kind {
		case yaml.MappingNode:
			if len(valNode.Content) == 0 {
				md.Set(key, Absent())
				continue
			}
			if err := flattenMapping(md, key, valNode); err != nil {
				return err
			}
		case yaml.SequenceNode:
			items, err := sequenceItems(valNode)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			md.Set(key, List(items))
		case yaml.ScalarNode:
			v, err := scalarValue(valNode)
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			md.Set(key, v)
		default:
			return fmt.Errorf("key %q: unsupported %s value", key, nodeKindName(valNode))
		}
	}
	return nil
}

// flattenMerge applies a `<<` merge key. Keys already present win.
func flattenMerge(md *Metadata, prefix string, node *yaml.Node) error {
	var sources []*yaml.Node
	switch node.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{node}
	case yaml.SequenceNode:
		for _, n := range node.Content {
			sources = append(sources, resolveAlias(n))
		}
	default:
		return fmt.Errorf("merge value must be a mapping, got %s", nodeKindName(node))
	}

	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("merge value must be a mapping, got %s", nodeKindName(src))
		}
		merged := NewMetadata()
		if err := flattenMapping(merged, prefix, src); err != nil {
			return err
		}
		for k, v := range merged.All() {
			if !md.Has(k) {
				md.Set(k, v)
			}
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Absent(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the literal.
			return String(n.Value), nil
		}
		return Int(i), nil
	case "!!float":
		if n.Style == 0 && !yaml11Float.MatchString(n.Value) {
			// 1e3 and 1.0e3 are strings under YAML 1.1.
			return String(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!str":
		if n.Style == 0 {
			if b, ok := yaml11Bools[n.Value]; ok {
				return Bool(b), nil
			}
		}
		return String(n.Value), nil
	default:
		// Timestamps, binary and custom tags keep their literal text.
		return String(n.Value), nil
	}
}

func sequenceItems(n *yaml.Node) ([]string, error) {
	items := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolveAlias(item)
		if item.Kind == yaml.ScalarNode {
			items = append(items, item.Value)
			continue
		}
		out, err := yaml.Marshal(flowStyle(item))
		if err != nil {
			return nil, err
		}
		items = append(items, strings.TrimSpace(string(out)))
	}
	return items, nil
}

// flowStyle returns a copy of n rendered in flow style, so nested collections
// inside a list collapse to a single line.
func flowStyle(n *yaml.Node) *yaml.Node {
	cp := *n
	cp.Style |= yaml.FlowStyle
	return &cp
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
