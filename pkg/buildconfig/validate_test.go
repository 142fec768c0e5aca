package buildconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := &BuildConfiguration{
		Networks: map[string]NetworkProfile{
			"broken": {Host: "bad host!", Port: 0, NetworkID: "main"},
			"ok":     {Host: "localhost", Port: 8545, NetworkID: "1"},
		},
		Compilers:          Compilers{Vyper: VyperCompiler{Version: "banana"}},
		ContractsDirectory: "  ",
	}

	err := Validate(cfg)
	require.Error(t, err)

	var paths []string
	for _, fe := range FieldErrors(err) {
		paths = append(paths, fe.Path)
	}
	assert.ElementsMatch(t, []string{
		"networks.broken.host",
		"networks.broken.port",
		"networks.broken.network_id",
		"compilers.vyper.version",
		"contracts_directory",
	}, paths)
}

func TestValidate_RequiresNetworks(t *testing.T) {
	cfg := Default()
	cfg.Networks = nil

	fes := FieldErrors(Validate(cfg))
	require.Len(t, fes, 1)
	assert.Equal(t, "networks", fes[0].Path)
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestValidatePort(t *testing.T) {
	for _, port := range []int{1, 80, 9545, 65535} {
		assert.NoError(t, ValidatePort(port), port)
	}
	for _, port := range []int{-1, 0, 65536, 100000} {
		assert.Error(t, ValidatePort(port), port)
	}
}

func TestValidateNetworkID(t *testing.T) {
	for _, id := range []string{"*", "0", "1", "5777", "18446744073709551615"} {
		assert.NoError(t, ValidateNetworkID(id), id)
	}
	for _, id := range []string{"", "**", "-1", "0x1", "1.5", "main", " 1", "18446744073709551616"} {
		assert.Error(t, ValidateNetworkID(id), id)
	}
}

func TestValidateVersionRange(t *testing.T) {
	for _, rng := range []string{"^0.3.0", "~0.3.7", ">=0.3.7 <0.4.0", "0.3.10", "*", ">=0.2, <0.4"} {
		assert.NoError(t, ValidateVersionRange(rng), rng)
	}
	for _, rng := range []string{"", "   ", "banana", "not-a-range"} {
		assert.Error(t, ValidateVersionRange(rng), rng)
	}
}

func TestValidateHost(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "::1", "localhost", "rpc.example.org", "node-1.internal"} {
		assert.NoError(t, ValidateHost(host), host)
	}
	for _, host := range []string{"", "bad host", "-leading.example", "under_score", strings.Repeat("a", 64)} {
		assert.Error(t, ValidateHost(host), host)
	}
}

func TestCheckContractsDirectory(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "contracts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "file.txt"), nil, 0644))

	cfg := &BuildConfiguration{ContractsDirectory: "contracts"}
	assert.NoError(t, CheckContractsDirectory(cfg, base))

	cfg.ContractsDirectory = "."
	assert.NoError(t, CheckContractsDirectory(cfg, base))

	for _, dir := range []string{"missing", "file.txt", ""} {
		cfg.ContractsDirectory = dir
		err := CheckContractsDirectory(cfg, base)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), dir)
		assert.Equal(t, "contracts_directory", fe.Path)
	}
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Empty(t, FieldErrors(errors.New("plain")))

	joined := errors.Join(&FieldError{Path: "a", Message: "x"}, &FieldError{Path: "b", Message: "y"})
	fes := FieldErrors(joined)
	require.Len(t, fes, 2)
	assert.Equal(t, "a: x", fes[0].Error())
}

func TestValidate_MessagesUseSerializedPaths(t *testing.T) {
	cfg := Default()
	cfg.Networks["staging"] = NetworkProfile{Host: "", Port: 70000, NetworkID: "0x5"}
	cfg.Compilers.Vyper.Version = ""

	byPath := map[string]string{}
	for _, fe := range FieldErrors(Validate(cfg)) {
		byPath[fe.Path] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"networks.staging.host":       "host is required",
		"networks.staging.port":       "port 70000 out of range 1-65535",
		"networks.staging.network_id": `network_id "0x5" must be "*" or an unsigned integer`,
		"compilers.vyper.version":     "version range is required",
	}, byPath)
}

func TestValidate_SortedByPath(t *testing.T) {
	cfg := Default()
	cfg.Networks["b"] = NetworkProfile{Host: "localhost", Port: 0, NetworkID: "1"}
	cfg.Networks["a"] = NetworkProfile{Host: "localhost", Port: 0, NetworkID: "1"}

	fes := FieldErrors(Validate(cfg))
	require.Len(t, fes, 2)
	assert.Equal(t, "networks.a.port", fes[0].Path)
	assert.Equal(t, "networks.b.port", fes[1].Path)
}
