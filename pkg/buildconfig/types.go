package buildconfig

import (
	"net"
	"path/filepath"
	"sort"
	"strconv"
)

// WildcardNetworkID matches any network id reported by a node
const WildcardNetworkID = "*"

// BuildConfiguration is the declarative record consumed by the contract toolchain
type BuildConfiguration struct {
	Networks           map[string]NetworkProfile `json:"networks" yaml:"networks" validate:"min=1,dive"`
	Compilers          Compilers                 `json:"compilers" yaml:"compilers"`
	ContractsDirectory string                    `json:"contracts_directory" yaml:"contracts_directory" validate:"notblank"`
}

// NetworkProfile describes how to reach a blockchain node
type NetworkProfile struct {
	Host      string `json:"host" yaml:"host" validate:"required,max=253,hostname_rfc1123|ip"`
	Port      int    `json:"port" yaml:"port" validate:"min=1,max=65535"`
	NetworkID string `json:"network_id" yaml:"network_id" validate:"network_id"`
}

type Compilers struct {
	Vyper VyperCompiler `json:"vyper" yaml:"vyper"`
}

type VyperCompiler struct {
	Version string `json:"version" yaml:"version" validate:"semver_range"`
}

// Network returns the profile registered under name
func (c *BuildConfiguration) Network(name string) (NetworkProfile, bool) {
	p, ok := c.Networks[name]
	return p, ok
}

// NetworkNames returns the configured network names in lexical order
func (c *BuildConfiguration) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VyperVersion returns the pinned vyper version range
func (c *BuildConfiguration) VyperVersion() string {
	return c.Compilers.Vyper.Version
}

// ContractsPath resolves contracts_directory against baseDir, which is
// normally the directory holding the configuration file.
func (c *BuildConfiguration) ContractsPath(baseDir string) string {
	dir := c.ContractsDirectory
	if filepath.IsAbs(dir) || baseDir == "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(baseDir, dir)
}

// Endpoint returns the JSON-RPC URL for the profile
func (p NetworkProfile) Endpoint() string {
	return "http://" + net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// IsWildcard reports whether the profile accepts any network id
func (p NetworkProfile) IsWildcard() bool {
	return p.NetworkID == WildcardNetworkID
}

// Matches reports whether a node advertising id satisfies the profile
func (p NetworkProfile) Matches(id uint64) bool {
	if p.IsWildcard() {
		return true
	}
	want, err := strconv.ParseUint(p.NetworkID, 10, 64)
	if err != nil {
		return false
	}
	return want == id
}

// Equal compares two records field for field
func Equal(a, b *BuildConfiguration) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ContractsDirectory != b.ContractsDirectory || a.Compilers != b.Compilers {
		return false
	}
	if len(a.Networks) != len(b.Networks) {
		return false
	}
	for name, pa := range a.Networks {
		pb, ok := b.Networks[name]
		if !ok || pa != pb {
			return false
		}
	}
	return true
}

// Default returns the record written by a fresh init
func Default() *BuildConfiguration {
	return &BuildConfiguration{
		Networks: map[string]NetworkProfile{
			"development": {
				Host:      "127.0.0.1",
				Port:      9545,
				NetworkID: WildcardNetworkID,
			},
		},
		Compilers: Compilers{
			Vyper: VyperCompiler{Version: "^0.3.0"},
		},
		ContractsDirectory: ".",
	}
}
