package buildconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const developmentYAML = `networks:
  development:
    host: 127.0.0.1
    port: 9545
    network_id: "*"
compilers:
  vyper:
    version: ^0.3.0
contracts_directory: .
`

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"buildconfig.yaml":  FormatYAML,
		"buildconfig.YML":   FormatYAML,
		"buildconfig.json":  FormatJSON,
		"truffle-config.js": FormatJS,
		"truffle.cjs":       FormatJS,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("buildconfig.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_DevelopmentExample(t *testing.T) {
	cfg, err := Parse([]byte(developmentYAML), FormatYAML)
	require.NoError(t, err)

	p, ok := cfg.Network("development")
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", p.Host)
	assert.Equal(t, 9545, p.Port)
	assert.Equal(t, "*", p.NetworkID)
	assert.Equal(t, "^0.3.0", cfg.VyperVersion())
	assert.Equal(t, ".", cfg.ContractsDirectory)

	assert.NoError(t, Validate(cfg))
	assert.True(t, Equal(Default(), cfg))
}

func TestParse_YAMLNumericNetworkID(t *testing.T) {
	data := []byte(`networks:
  ganache:
    host: localhost
    port: 7545
    network_id: 5777
compilers:
  vyper:
    version: ">=0.3.7 <0.4.0"
contracts_directory: contracts
`)
	cfg, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "5777", cfg.Networks["ganache"].NetworkID)
	assert.NoError(t, Validate(cfg))
}

func TestParse_YAMLRejectsUnknownFields(t *testing.T) {
	data := []byte(developmentYAML + "solc:\n  version: 0.8.0\n")
	_, err := Parse(data, FormatYAML)
	assert.Error(t, err)
}

func TestParse_YAMLRejectsTrailingDocuments(t *testing.T) {
	for _, extra := range []string{"---\nfoo: bar\n", "---\ncontracts_directory: other\n"} {
		_, err := Parse([]byte(developmentYAML+extra), FormatYAML)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single YAML document")
	}
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
  "networks": {"development": {"host": "127.0.0.1", "port": 9545, "network_id": "*"}},
  "compilers": {"vyper": {"version": "^0.3.0"}},
  "contracts_directory": "."
}`)
	cfg, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.True(t, Equal(Default(), cfg))

	_, err = Parse([]byte(`{"contracts_directory": ".", "extra": true}`), FormatJSON)
	assert.Error(t, err)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Marshal(Default(), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRoundTrip(t *testing.T) {
	cfg := &BuildConfiguration{
		Networks: map[string]NetworkProfile{
			"development": {Host: "127.0.0.1", Port: 9545, NetworkID: "*"},
			"ganache":     {Host: "localhost", Port: 7545, NetworkID: "5777"},
			"my-testnet":  {Host: "rpc.example.org", Port: 65535, NetworkID: "11155111"},
		},
		Compilers:          Compilers{Vyper: VyperCompiler{Version: ">=0.3.7, <0.4.0"}},
		ContractsDirectory: "src/contracts",
	}

	for _, format := range []Format{FormatYAML, FormatJSON, FormatJS} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(cfg, format)
			require.NoError(t, err)

			back, err := Parse(data, format)
			require.NoError(t, err, string(data))
			if diff := cmp.Diff(cfg, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"buildconfig.yaml", "buildconfig.json", "truffle-config.js"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, Default()))

		cfg, err := Load(path)
		require.NoError(t, err, name)
		assert.True(t, Equal(Default(), cfg), name)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("networks: [1, 2"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = Load(filepath.Join(dir, "buildconfig.ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
