package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Layr-Labs/vyperkit/pkg/buildconfig"
	"github.com/Layr-Labs/vyperkit/pkg/common"
	"github.com/Layr-Labs/vyperkit/pkg/migration"
	"github.com/Layr-Labs/vyperkit/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// ActionChain wraps command actions with middleware, outermost first
type ActionChain struct {
	Processors []func(action cli.ActionFunc) cli.ActionFunc
}

func NewActionChain() *ActionChain {
	return &ActionChain{
		Processors: make([]func(action cli.ActionFunc) cli.ActionFunc, 0),
	}
}

// Use appends a new processor to the chain
func (ac *ActionChain) Use(processor func(action cli.ActionFunc) cli.ActionFunc) {
	ac.Processors = append(ac.Processors, processor)
}

func (ac *ActionChain) Wrap(action cli.ActionFunc) cli.ActionFunc {
	for i := len(ac.Processors) - 1; i >= 0; i-- {
		action = ac.Processors[i](action)
	}
	return action
}

// ApplyMiddleware wraps every action in the command tree
func ApplyMiddleware(commands []*cli.Command, chain *ActionChain) {
	for _, cmd := range commands {
		if cmd.Action != nil {
			cmd.Action = chain.Wrap(cmd.Action)
		}
		if len(cmd.Subcommands) > 0 {
			ApplyMiddleware(cmd.Subcommands, chain)
		}
	}
}

// LoadEnvFile loads .env from the working directory when present
func LoadEnvFile(_ *cli.Context) error {
	if _, err := os.Stat(common.EnvFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(common.EnvFile); err != nil {
		return fmt.Errorf("load %s: %w", common.EnvFile, err)
	}
	return nil
}

// WithFirstRunTelemetry records the --enable/--disable-telemetry choice on
// first run. Without a flag telemetry stays off and nothing is asked.
func WithFirstRunTelemetry(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)

	first, err := common.IsFirstRun()
	if err != nil {
		logger.Debug("Failed to check first run status: %v", err)
		return nil
	}
	if !first {
		return nil
	}

	switch {
	case cCtx.Bool("enable-telemetry"):
		err = common.SetGlobalTelemetryPreference(true)
	case cCtx.Bool("disable-telemetry"):
		err = common.SetGlobalTelemetryPreference(false)
	default:
		err = common.MarkFirstRunComplete()
	}
	if err != nil {
		logger.Debug("Failed to save first run telemetry choice: %v", err)
	}
	return nil
}

// WithCommandMetricsContext starts collecting metrics for the invocation
func WithCommandMetricsContext(cCtx *cli.Context) error {
	metrics := telemetry.NewMetricsContext()
	cCtx.Context = telemetry.WithMetricsContext(cCtx.Context, metrics)

	if appEnv, ok := common.AppEnvironmentFromContext(cCtx.Context); ok {
		metrics.Properties["cli_version"] = appEnv.CLIVersion
		metrics.Properties["os"] = appEnv.OS
		metrics.Properties["arch"] = appEnv.Arch
		metrics.Properties["user_uuid"] = appEnv.UserUUID
	}

	for k, v := range collectFlagValues(cCtx) {
		metrics.Properties[k] = fmt.Sprintf("%v", v)
	}

	metrics.AddMetric("Count", 1)
	return nil
}

// newTelemetryClient is swapped out in tests
var newTelemetryClient = setupTelemetry

// WithMetricEmission runs the action and then emits its result metrics
func WithMetricEmission(action cli.ActionFunc) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		err := action(cCtx)

		client := newTelemetryClient(cCtx)
		cCtx.Context = telemetry.ContextWithClient(cCtx.Context, client)
		emitTelemetryMetrics(cCtx, err)

		return err
	}
}

func setupTelemetry(cCtx *cli.Context) telemetry.Client {
	if !common.TelemetryEnabled() {
		return telemetry.NewNoopClient()
	}
	appEnv, ok := common.AppEnvironmentFromContext(cCtx.Context)
	if !ok {
		return telemetry.NewNoopClient()
	}
	phClient, err := telemetry.NewPostHogClient(appEnv, common.AppName)
	if err != nil || phClient == nil {
		return telemetry.NewNoopClient()
	}
	return phClient
}

func emitTelemetryMetrics(cCtx *cli.Context, actionError error) {
	metrics, err := telemetry.MetricsFromContext(cCtx.Context)
	if err != nil {
		return
	}
	metrics.Properties["command"] = cCtx.Command.HelpName

	result := "Success"
	dimensions := map[string]string{}
	if actionError != nil {
		result = "Failure"
		dimensions["error_class"] = errorClass(actionError)
	}
	metrics.AddMetricWithDimensions(result, 1, dimensions)
	metrics.AddMetric("DurationMilliseconds", float64(time.Since(metrics.StartTime).Milliseconds()))

	client, ok := telemetry.ClientFromContext(cCtx.Context)
	if !ok {
		return
	}
	defer client.Close()

	logger := common.LoggerFromContext(cCtx.Context)
	for _, metric := range metrics.Snapshot() {
		if err := client.AddMetric(cCtx.Context, metric); err != nil {
			logger.Debug("failed to add metric %s: %v", metric.Name, err)
		}
	}
}

// errorClass names the kind of failure without its message, which can carry
// file paths, hosts or user input.
func errorClass(err error) string {
	var fieldErr *buildconfig.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return "validation"
	case errors.Is(err, buildconfig.ErrNoConfig):
		return "no_config"
	case errors.Is(err, buildconfig.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, migration.ErrAlreadyUpToDate):
		return "already_up_to_date"
	case errors.Is(err, os.ErrNotExist):
		return "not_found"
	case errors.Is(err, os.ErrPermission):
		return "permission"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return fmt.Sprintf("%T", err)
}

func getFlagValue(cCtx *cli.Context, name string) interface{} {
	if !cCtx.IsSet(name) {
		return nil
	}
	if cCtx.Bool(name) {
		return true
	}
	if s := cCtx.String(name); s != "" {
		return s
	}
	if d := cCtx.Duration(name); d != 0 {
		return d
	}
	return nil
}

// collectFlagValues gathers the explicitly set app and command flags
func collectFlagValues(cCtx *cli.Context) map[string]interface{} {
	flags := make(map[string]interface{})
	var all []cli.Flag
	if cCtx.App != nil {
		all = append(all, cCtx.App.Flags...)
	}
	if cCtx.Command != nil {
		all = append(all, cCtx.Command.Flags...)
	}
	for _, flag := range all {
		name := flag.Names()[0]
		// never ship paths or secrets, only whether the flag was used
		if name == "config" {
			if cCtx.IsSet(name) {
				flags[name] = true
			}
			continue
		}
		if v := getFlagValue(cCtx, name); v != nil {
			flags[name] = v
		}
	}
	return flags
}
