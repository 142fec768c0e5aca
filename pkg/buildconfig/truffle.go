package buildconfig

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matches the leading export statement of a truffle-config.js manifest
var exportRe = regexp.MustCompile(`^(?:module\.exports\s*=|export\s+default)\s*`)

// parseTruffle decodes a truffle-config.js style manifest. Only a literal
// object is accepted: once comments, trailing commas and the export
// statement are stripped the object is a YAML flow mapping.
func parseTruffle(data []byte) (*BuildConfiguration, error) {
	src, err := stripJS(string(data))
	if err != nil {
		return nil, err
	}

	src = strings.TrimSpace(src)
	loc := exportRe.FindStringIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("manifest must start with module.exports = or export default")
	}
	src = strings.TrimSpace(src[loc[1]:])
	src = strings.TrimSpace(strings.TrimSuffix(src, ";"))
	if !strings.HasPrefix(src, "{") || !strings.HasSuffix(src, "}") {
		return nil, fmt.Errorf("manifest must export an object literal")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("decode object literal: %w", err)
	}
	if err := checkLiteral(&doc); err != nil {
		return nil, err
	}

	var cfg BuildConfiguration
	if err := doc.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode object literal: %w", err)
	}
	return &cfg, nil
}

// checkLiteral rejects values that YAML would read as strings or nulls but
// JS evaluates: identifiers, member expressions, shorthand properties and
// spreads. Quoted strings, numbers, booleans and null pass.
func checkLiteral(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := checkLiteral(c); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if strings.HasPrefix(key.Value, "...") {
				return fmt.Errorf("line %d: spread properties are not supported", key.Line)
			}
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null" && val.Value != "null" {
				return fmt.Errorf("line %d: property %q has no value", key.Line, key.Value)
			}
			if err := checkLiteral(val); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if n.Style != 0 {
			return nil
		}
		switch n.ShortTag() {
		case "!!int", "!!float", "!!bool", "!!null":
			return nil
		}
		return fmt.Errorf("line %d: %q is not a literal value", n.Line, n.Value)
	case yaml.AliasNode:
		return fmt.Errorf("line %d: aliases are not supported", n.Line)
	}
	return nil
}

// stripJS removes comments and trailing commas outside of string literals
// and makes sure every key separator is followed by a space.
func stripJS(src string) (string, error) {
	var out strings.Builder
	out.Grow(len(src))

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'':
			end, err := scanString(src, i)
			if err != nil {
				return "", err
			}
			out.WriteString(strconv.Quote(jsUnquote(src[i+1 : end])))
			i = end
		case c == '`':
			return "", fmt.Errorf("template literals are not supported (offset %d)", i)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			out.WriteByte('\n')
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("unterminated block comment (offset %d)", i)
			}
			i += end + 3
			out.WriteByte(' ')
		case c == '(':
			return "", fmt.Errorf("function calls are not supported (offset %d)", i)
		case c == ',':
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
			out.WriteByte(c)
		case c == ':':
			out.WriteByte(c)
			if i+1 < len(src) && !isSpace(src[i+1]) {
				out.WriteByte(' ')
			}
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), nil
}

// scanString returns the index of the closing quote of the literal at start
func scanString(src string, start int) (int, error) {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i, nil
		case '\n':
			return 0, fmt.Errorf("unterminated string literal (offset %d)", start)
		}
	}
	return 0, fmt.Errorf("unterminated string literal (offset %d)", start)
}

// jsUnquote resolves the escape sequences of a JS string body
func jsUnquote(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u', 'x':
			width := 4
			if e == 'x' {
				width = 2
			}
			if i+width < len(body) {
				if r, err := strconv.ParseUint(body[i+1:i+1+width], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += width
					continue
				}
			}
			b.WriteByte(e)
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// renderTruffle writes the record back as a truffle-config.js manifest
func renderTruffle(cfg *BuildConfiguration) []byte {
	var b bytes.Buffer
	b.WriteString("module.exports = {\n")

	b.WriteString("  networks: {\n")
	for _, name := range cfg.NetworkNames() {
		p := cfg.Networks[name]
		fmt.Fprintf(&b, "    %s: {\n", jsKey(name))
		fmt.Fprintf(&b, "      host: %s,\n", strconv.Quote(p.Host))
		fmt.Fprintf(&b, "      port: %d,\n", p.Port)
		fmt.Fprintf(&b, "      network_id: %s,\n", strconv.Quote(p.NetworkID))
		b.WriteString("    },\n")
	}
	b.WriteString("  },\n")

	b.WriteString("  compilers: {\n")
	b.WriteString("    vyper: {\n")
	fmt.Fprintf(&b, "      version: %s,\n", strconv.Quote(cfg.Compilers.Vyper.Version))
	b.WriteString("    },\n")
	b.WriteString("  },\n")

	fmt.Fprintf(&b, "  contracts_directory: %s,\n", strconv.Quote(cfg.ContractsDirectory))
	b.WriteString("};\n")
	return b.Bytes()
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func jsKey(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}
