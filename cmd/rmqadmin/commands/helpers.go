package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/constants"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML
	OutputFormatTable = constants.FormatTable

	// NotAvailable is shown in tables when a value is missing.
	NotAvailable = constants.NotAvailable
)

// Common static errors used throughout the commands package.
var (
	ErrNodeNotConfigured       = errors.New("node is not configured")
	ErrNodeAlreadyConfigured   = errors.New("node is already configured, use --overwrite to replace it")
	ErrInvalidCACertificate    = errors.New("failed to parse CA certificate file")
	ErrPasswordRequired        = errors.New("a password or a pre-generated password hash is required")
	ErrPasswordOptionsConflict = errors.New("--password and --password-hash are mutually exclusive")
	ErrUnknownConfigKey        = errors.New("unknown configuration key")
	ErrNoReachableNodes        = errors.New("none of the probed nodes could be reached")
)

var titleCaser = cases.Title(language.English)

// renderOutput encodes value as JSON or YAML depending on the configured
// output format, or invokes renderTable for the default tabular output.
func renderOutput(value interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(constants.JSONIndentSize)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		return renderTable()
	}
}

// confirmDeletion prompts for confirmation unless force is set. It reports
// whether the caller should proceed.
func confirmDeletion(entityType, name string, force bool) bool {
	if force {
		return true
	}

	_, _ = fmt.Fprintf(os.Stdout, "Really delete %s '%s'? (y/N): ", entityType, name)

	var response string

	_, _ = fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		_, _ = os.Stdout.WriteString("Cancelled\n")

		return false
	}

	return true
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword() (string, error) {
	fmt.Print("Password: ")

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()

	return string(bytePassword), nil
}

// orNotAvailable dereferences an optional string for table output.
func orNotAvailable(value *string) string {
	if value == nil || *value == "" {
		return NotAvailable
	}

	return *value
}

// formatBool renders a boolean as yes/no for table output.
func formatBool(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

// formatTags joins a tag list for table output.
func formatTags(tags rabbitmq.TagList) string {
	if len(tags) == 0 {
		return NotAvailable
	}

	return strings.Join(tags, ", ")
}

// formatArguments renders a map as a comma-separated list of key=value
// pairs, sorted by key.
func formatArguments(arguments map[string]interface{}) string {
	if len(arguments) == 0 {
		return NotAvailable
	}

	pairs := make([]string, 0, len(arguments))
	for _, key := range sortedKeys(arguments) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, arguments[key]))
	}

	return strings.Join(pairs, ", ")
}

// abbreviate shortens long values so tables stay readable.
func abbreviate(value string) string {
	if len(value) <= constants.MaxDisplayWidth {
		return value
	}

	return value[:constants.MaxDisplayWidth-3] + "..."
}

// displayTitle turns raw identifiers such as "max-connections" into a
// human readable title.
func displayTitle(raw string) string {
	return titleCaser.String(strings.ReplaceAll(raw, "-", " "))
}

// inferArgumentValue converts a raw flag value into a typed optional
// argument value. Booleans and numbers are recognized, everything else
// stays a string.
func inferArgumentValue(raw string) interface{} {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}

	if number, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return number
	}

	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return number
	}

	return raw
}

// optionalArgumentsFromFlags converts --argument key=value pairs into typed
// optional queue and exchange arguments.
func optionalArgumentsFromFlags(raw map[string]string) rabbitmq.XArguments {
	if len(raw) == 0 {
		return nil
	}

	arguments := make(rabbitmq.XArguments, len(raw))
	for key, value := range raw {
		arguments[key] = inferArgumentValue(value)
	}

	return arguments
}

// parseJSONObject decodes a JSON object passed on the command line.
func parseJSONObject(raw string) (map[string]interface{}, error) {
	var parsed map[string]interface{}

	err := json.Unmarshal([]byte(raw), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}

	return parsed, nil
}

// sortedKeys returns the map keys in lexical order for stable output.
func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// requireName rejects blank resource names before any API call is made.
func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return constants.ErrEmptyName
	}

	return nil
}

// formatBytes renders a byte count with an IEC unit suffix.
func formatBytes(value uint64) string {
	const unit = 1024

	if value < unit {
		return strconv.FormatUint(value, 10) + " B"
	}

	div, exp := uint64(unit), 0
	for n := value / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(value)/float64(div), "KMGTPE"[exp])
}
