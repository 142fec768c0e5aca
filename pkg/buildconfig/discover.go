package buildconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the file written by init
const DefaultFileName = "buildconfig.yaml"

// CandidateFiles are tried in order in every directory during discovery
var CandidateFiles = []string{
	"buildconfig.yaml",
	"buildconfig.yml",
	"buildconfig.json",
	"truffle-config.js",
}

var ErrNoConfig = errors.New("no build config found")

// Find searches startDir and its parents for a build config file
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for {
		for _, name := range CandidateFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		// Reached filesystem root
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w in %s or any parent directory", ErrNoConfig, startDir)
}
