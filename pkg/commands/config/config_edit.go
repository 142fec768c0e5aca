package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"sort"
	"strings"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"github.com/Layr-Labs/vyperkit/pkg/telemetry"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"
)

// ConfigChange represents a change in a configuration field
type ConfigChange struct {
	Path     string
	OldValue interface{}
	NewValue interface{}
}

// runEditor is replaced in tests
var runEditor = openEditor

// EditConfig opens the build config in an editor, validates the result and
// restores the original bytes when the edit is invalid.
func EditConfig(cCtx *cli.Context, configPath string) error {
	logger := common.LoggerFromContext(cCtx.Context)

	editor, err := findEditor()
	if err != nil {
		return err
	}

	backupData, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	before, err := buildconfig.Load(configPath)
	if err != nil {
		return err
	}

	if err := runEditor(editor, configPath, logger); err != nil {
		return err
	}

	after, err := ValidateConfig(configPath)
	if err != nil {
		logger.Error("Error validating config: %v", err)
		logger.Info("Reverting changes...")
		if restoreErr := os.WriteFile(configPath, backupData, 0644); restoreErr != nil {
			logger.Error("Failed to restore backup after validation error: %v", restoreErr)
			return restoreErr
		}
		return err
	}

	changes, err := diffConfigs(before, after)
	if err != nil {
		return err
	}
	logConfigChanges(changes, logger)
	sendConfigChangeTelemetry(cCtx.Context, changes)

	logger.Info("Config file updated successfully.")
	return nil
}

// findEditor looks for available text editors
func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		if _, err := exec.LookPath(editor); err == nil {
			return editor, nil
		}
	}
	for _, editor := range []string{"nano", "vi", "vim"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no suitable text editor found. Please install nano or vi, or set the EDITOR environment variable")
}

func openEditor(editorPath, filePath string, logger iface.Logger) error {
	logger.Info("Opening config file in %s...", editorPath)

	cmd := exec.Command(editorPath, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ValidateConfig loads the record at configPath and checks every field
func ValidateConfig(configPath string) (*buildconfig.BuildConfiguration, error) {
	cfg, err := buildconfig.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := buildconfig.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// diffConfigs compares two records as generic maps so every field shows up
// under its serialized name
func diffConfigs(before, after *buildconfig.BuildConfiguration) ([]ConfigChange, error) {
	om, err := toMap(before)
	if err != nil {
		return nil, err
	}
	nm, err := toMap(after)
	if err != nil {
		return nil, err
	}
	changes := diffValues("", om, nm)
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

func toMap(cfg *buildconfig.BuildConfiguration) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to convert yaml to map: %w", err)
	}
	return m, nil
}

// diffValues recurses into maps and compares everything else by value
func diffValues(path string, oldV, newV interface{}) []ConfigChange {
	if oldV == nil && newV == nil {
		return nil
	}
	if oldV == nil || newV == nil {
		return []ConfigChange{{Path: path, OldValue: oldV, NewValue: newV}}
	}

	om, oldIsMap := oldV.(map[string]interface{})
	nm, newIsMap := newV.(map[string]interface{})
	if !oldIsMap || !newIsMap {
		if !reflect.DeepEqual(oldV, newV) {
			return []ConfigChange{{Path: path, OldValue: oldV, NewValue: newV}}
		}
		return nil
	}

	var out []ConfigChange
	for k, ov := range om {
		out = append(out, diffValues(join(path, k), ov, nm[k])...)
	}
	for k, nv := range nm {
		if _, ok := om[k]; !ok {
			out = append(out, ConfigChange{Path: join(path, k), OldValue: nil, NewValue: nv})
		}
	}
	return out
}

func join(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// logConfigChanges logs the changes grouped by top-level section
func logConfigChanges(changes []ConfigChange, logger iface.Logger) {
	if len(changes) == 0 {
		logger.Info("No changes detected in configuration.")
		return
	}

	sections := make(map[string][]ConfigChange)
	var order []string
	for _, change := range changes {
		section := strings.Split(change.Path, ".")[0]
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], change)
	}

	titleCaser := cases.Title(language.English)
	for _, section := range order {
		logger.Info("%s changes:", titleCaser.String(strings.ReplaceAll(section, "_", " ")))
		for _, change := range sections[section] {
			switch {
			case change.OldValue == nil:
				logger.Info("  - %s added (value: %v)", change.Path, change.NewValue)
			case change.NewValue == nil:
				logger.Info("  - %s removed (was: %v)", change.Path, change.OldValue)
			default:
				logger.Info("  - %s changed from '%v' to '%v'", change.Path, change.OldValue, change.NewValue)
			}
		}
	}
}

// sendConfigChangeTelemetry records how many fields changed per section.
// Values are never sent.
func sendConfigChangeTelemetry(ctx context.Context, changes []ConfigChange) {
	if len(changes) == 0 {
		return
	}
	metrics, err := telemetry.MetricsFromContext(ctx)
	if err != nil {
		return
	}

	counts := make(map[string]int)
	for _, change := range changes {
		counts[strings.Split(change.Path, ".")[0]]++
	}
	dims := make(map[string]string, len(counts))
	for section, count := range counts {
		dims[section+"_changes"] = fmt.Sprintf("%d", count)
	}
	metrics.AddMetricWithDimensions("ConfigChangeCount", float64(len(changes)), dims)
}
