package common

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML file into a document node, keeping order and comments
func LoadYAML(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("unmarshal to node: %w", err)
	}
	return &node, nil
}

// EncodeYAML renders a node with two-space indentation
func EncodeYAML(node *yaml.Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeNode(buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteYAML encodes a node and writes it to path
func WriteYAML(path string, node *yaml.Node) error {
	data, err := EncodeYAML(node)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// PrintYAML writes the node to w, preserving order and comments
func PrintYAML(w io.Writer, node *yaml.Node) error {
	return writeNode(w, node)
}

func writeNode(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		enc.Close()
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// RootMapping returns the top-level mapping of a document node
func RootMapping(doc *yaml.Node) (*yaml.Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	root := doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at top level")
	}
	return root, nil
}

// GetChildByKey returns the value node associated with the given key from a MappingNode
func GetChildByKey(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// SetPath sets a scalar at a dot-delimited mapping path, creating
// intermediate mappings as needed.
func SetPath(root *yaml.Node, path []string, val string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	cursor := root
	for i, seg := range path {
		if seg == "" {
			return fmt.Errorf("empty segment in %q", strings.Join(path, "."))
		}
		if cursor.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(path[:i], "."))
		}
		last := i == len(path)-1
		child := GetChildByKey(cursor, seg)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			if last {
				child = &yaml.Node{Kind: yaml.ScalarNode}
			}
			cursor.Content = append(cursor.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: seg}, child)
		}
		if last {
			if child.Kind == yaml.MappingNode && len(child.Content) > 0 {
				return fmt.Errorf("%s is a mapping, not a scalar", strings.Join(path, "."))
			}
			writeScalar(child, val)
			return nil
		}
		cursor = child
	}
	return nil
}

// writeScalar overwrites a node with a scalar value, keeping integers as integers
func writeScalar(node *yaml.Node, val string) {
	val = strings.Trim(val, `"'`)
	node.Kind = yaml.ScalarNode
	node.Content = nil
	if _, err := strconv.Atoi(val); err == nil {
		node.Tag = "!!int"
		node.Style = 0
	} else {
		node.Tag = "!!str"
		node.Style = yaml.DoubleQuotedStyle
	}
	node.Value = val
}
