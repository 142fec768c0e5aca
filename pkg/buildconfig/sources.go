package buildconfig

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// VyperExt is the extension of vyper contract sources
const VyperExt = ".vy"

// ContractSources lists the vyper sources under the contracts directory.
// Hidden directories and node_modules are skipped.
func ContractSources(cfg *BuildConfiguration, baseDir string) ([]string, error) {
	if err := CheckContractsDirectory(cfg, baseDir); err != nil {
		return nil, err
	}
	root := cfg.ContractsPath(baseDir)

	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), VyperExt) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk contracts directory: %w", err)
	}
	sort.Strings(sources)
	return sources, nil
}
