package buildconfig

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

const (
	MinPort = 1
	MaxPort = 65535

	hostTags = "required,max=253,hostname_rfc1123|ip"
	portTags = "min=1,max=65535"
)

var (
	uintRe     = regexp.MustCompile(`^[0-9]+$`)
	mapIndexRe = regexp.MustCompile(`\[([^\]]*)\]`)

	validate = newValidator()
)

// FieldError describes one violated constraint of the record
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// newValidator reports fields by their serialized names and knows the
// record's own rules
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("network_id", func(fl validator.FieldLevel) bool {
		return isNetworkID(fl.Field().String())
	})
	_ = v.RegisterValidation("semver_range", func(fl validator.FieldLevel) bool {
		return isVersionRange(fl.Field().String())
	})
	return v
}

// Validate checks every invariant of the record and reports all violations
// joined into a single error. A nil return means the record is well formed.
func Validate(cfg *BuildConfiguration) error {
	if cfg == nil {
		return &FieldError{Path: "<root>", Message: "build config is empty"}
	}

	var problems []*FieldError
	for name := range cfg.Networks {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, &FieldError{Path: "networks." + name, Message: "network name must not be blank"})
		}
	}

	err := validate.Struct(cfg)
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			problems = append(problems, toFieldError(fe))
		}
	default:
		return fmt.Errorf("validate build config: %w", err)
	}

	sort.SliceStable(problems, func(i, j int) bool { return problems[i].Path < problems[j].Path })
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// toFieldError turns "BuildConfiguration.networks[dev].port" into
// "networks.dev.port" with a readable message
func toFieldError(fe validator.FieldError) *FieldError {
	path := mapIndexRe.ReplaceAllString(fe.Namespace(), ".$1")
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	return &FieldError{Path: path, Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	value := fmt.Sprint(fe.Value())
	switch fe.Field() {
	case "networks":
		return "at least one network must be defined"
	case "host":
		if value == "" {
			return "host is required"
		}
		return fmt.Sprintf("invalid hostname %q", value)
	case "port":
		return fmt.Sprintf("port %s out of range %d-%d", value, MinPort, MaxPort)
	case "network_id":
		return fmt.Sprintf("network_id %q must be %q or an unsigned integer", value, WildcardNetworkID)
	case "version":
		if strings.TrimSpace(value) == "" {
			return "version range is required"
		}
		return fmt.Sprintf("invalid version range %q", value)
	case "contracts_directory":
		return "must not be empty"
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// ValidateHost accepts IP literals and RFC 1123 hostnames
func ValidateHost(host string) error {
	if err := validate.Var(host, hostTags); err != nil {
		if host == "" {
			return fmt.Errorf("host is required")
		}
		return fmt.Errorf("invalid hostname %q", host)
	}
	return nil
}

// ValidatePort requires a usable TCP port
func ValidatePort(port int) error {
	if err := validate.Var(port, portTags); err != nil {
		return fmt.Errorf("port %d out of range %d-%d", port, MinPort, MaxPort)
	}
	return nil
}

// ValidateNetworkID accepts the wildcard or an unsigned integer
func ValidateNetworkID(id string) error {
	if !isNetworkID(id) {
		return fmt.Errorf("network_id %q must be %q or an unsigned integer", id, WildcardNetworkID)
	}
	return nil
}

// ValidateVersionRange requires a parseable semver constraint
func ValidateVersionRange(rng string) error {
	if strings.TrimSpace(rng) == "" {
		return fmt.Errorf("version range is required")
	}
	if _, err := semver.NewConstraint(rng); err != nil {
		return fmt.Errorf("invalid version range %q: %w", rng, err)
	}
	return nil
}

func isNetworkID(id string) bool {
	if id == WildcardNetworkID {
		return true
	}
	if !uintRe.MatchString(id) {
		return false
	}
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}

func isVersionRange(rng string) bool {
	return ValidateVersionRange(rng) == nil
}

// CheckContractsDirectory verifies that contracts_directory exists at
// consumption time. Relative paths resolve against baseDir.
func CheckContractsDirectory(cfg *BuildConfiguration, baseDir string) error {
	if strings.TrimSpace(cfg.ContractsDirectory) == "" {
		return &FieldError{Path: "contracts_directory", Message: "must not be empty"}
	}
	dir := cfg.ContractsPath(baseDir)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &FieldError{Path: "contracts_directory", Message: fmt.Sprintf("%s does not exist", dir)}
		}
		return fmt.Errorf("stat contracts directory: %w", err)
	}
	if !info.IsDir() {
		return &FieldError{Path: "contracts_directory", Message: fmt.Sprintf("%s is not a directory", dir)}
	}
	return nil
}

// FieldErrors unpacks the individual violations from a Validate result
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}
