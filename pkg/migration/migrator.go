package migration

import (
	"errors"
	"fmt"

	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"gopkg.in/yaml.v3"
)

// PatchCondition defines a node-level condition
type PatchCondition interface {
	// ShouldApply returns true if the matched node should be patched
	ShouldApply(node *yaml.Node) bool
}

// Available conditions
type Always struct{}
type IsScalar struct{}

// Always applies unconditionally
func (Always) ShouldApply(_ *yaml.Node) bool { return true }

// IsScalar applies only to scalar values
func (IsScalar) ShouldApply(node *yaml.Node) bool { return node.Kind == yaml.ScalarNode }

// PatchRule rewrites every mapping entry matched by Path. A "*" segment
// matches every key of a mapping.
type PatchRule struct {
	Name string
	Path []string
	// Condition defaults to Always
	Condition PatchCondition
	// Rename: if set, the matched key is renamed
	Rename string
	// Transform: optional replacement for the matched value
	Transform func(node *yaml.Node) *yaml.Node
}

// PatchEngine applies a set of PatchRule against a user YAML AST preserving order, comments, and anchors
type PatchEngine struct {
	User  *yaml.Node
	Rules []PatchRule
}

// ErrAlreadyUpToDate is returned when no rule matched
var ErrAlreadyUpToDate = errors.New("already up to date")

// LegacyRules upgrade the older build config layouts to the current one
var LegacyRules = []PatchRule{
	{
		Name:   "rename contractsDirectory to contracts_directory",
		Path:   []string{"contractsDirectory"},
		Rename: "contracts_directory",
	},
	{
		Name:   "rename networks.*.networkId to network_id",
		Path:   []string{"networks", "*", "networkId"},
		Rename: "network_id",
	},
	{
		Name:      "expand compilers.vyper shorthand",
		Path:      []string{"compilers", "vyper"},
		Condition: IsScalar{},
		Transform: func(node *yaml.Node) *yaml.Node {
			return &yaml.Node{
				Kind: yaml.MappingNode,
				Tag:  "!!map",
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: "version"},
					CloneNode(node),
				},
			}
		},
	},
}

// Apply walks each rule over the matching entries and returns the names of
// the rules that changed something
func (e *PatchEngine) Apply() ([]string, error) {
	root := e.User
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var applied []string
	for _, rule := range e.Rules {
		cond := rule.Condition
		if cond == nil {
			cond = Always{}
		}

		changed := false
		for _, m := range matchEntries(root, rule.Path) {
			key, val := m.parent.Content[m.idx], m.parent.Content[m.idx+1]
			if !cond.ShouldApply(val) {
				continue
			}
			if rule.Rename != "" && rule.Rename != key.Value {
				if keyIndex(m.parent, rule.Rename) >= 0 {
					return applied, fmt.Errorf("%s: both %s and %s are set", rule.Name, key.Value, rule.Rename)
				}
				key.Value = rule.Rename
				changed = true
			}
			if rule.Transform != nil {
				m.parent.Content[m.idx+1] = rule.Transform(val)
				changed = true
			}
		}
		if changed {
			applied = append(applied, rule.Name)
		}
	}
	return applied, nil
}

// MigrateYaml upgrades the YAML build config at path in place and returns
// the names of the applied rules. check, when set, vets the migrated bytes
// before anything is written.
func MigrateYaml(logger iface.Logger, path string, rules []PatchRule, check func([]byte) error) ([]string, error) {
	userNode, err := common.LoadYAML(path)
	if err != nil {
		return nil, fmt.Errorf("load error %s: %w", path, err)
	}

	applied, err := MigrateNode(userNode, rules)
	if errors.Is(err, ErrAlreadyUpToDate) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("migration failed %s: %w", path, err)
	}
	for _, name := range applied {
		logger.Info("Migrating %s: %s", path, name)
	}

	if check != nil {
		data, err := common.EncodeYAML(userNode)
		if err != nil {
			return nil, err
		}
		if err := check(data); err != nil {
			return nil, fmt.Errorf("migrated %s is still invalid: %w", path, err)
		}
	}
	if err := common.WriteYAML(path, userNode); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return applied, nil
}

// MigrateNode applies rules to the user AST. ErrAlreadyUpToDate means no
// rule matched and the node is untouched.
func MigrateNode(user *yaml.Node, rules []PatchRule) ([]string, error) {
	engine := PatchEngine{User: user, Rules: rules}
	applied, err := engine.Apply()
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, ErrAlreadyUpToDate
	}
	return applied, nil
}

type entry struct {
	parent *yaml.Node
	idx    int
}

// matchEntries returns the mapping entries addressed by path
func matchEntries(node *yaml.Node, path []string) []entry {
	if len(path) == 0 || node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	seg, rest := path[0], path[1:]

	var out []entry
	for i := 0; i+1 < len(node.Content); i += 2 {
		if seg != "*" && node.Content[i].Value != seg {
			continue
		}
		if len(rest) == 0 {
			out = append(out, entry{parent: node, idx: i})
			continue
		}
		out = append(out, matchEntries(node.Content[i+1], rest)...)
	}
	return out
}

// CloneNode deep-copies a *yaml.Node, preserving comments and anchors
func CloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, ch := range n.Content {
		c.Content[i] = CloneNode(ch)
	}
	return &c
}

func keyIndex(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}
