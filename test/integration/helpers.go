//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rmqclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint     string
	Username     string
	Password     string
	RmqadminPath string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:     os.Getenv("RABBITMQ_ENDPOINT"),
		Username:     envOr("RABBITMQ_USERNAME", "guest"),
		Password:     envOr("RABBITMQ_PASSWORD", "guest"),
		RmqadminPath: getRmqadminPath(),
		Verbose:      os.Getenv("RMQADMIN_VERBOSE") == "true",
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getRmqadminPath determines the path to the rmqadmin binary
func getRmqadminPath() string {
	if path := os.Getenv("RMQADMIN_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../rmqadmin",
		"./rmqadmin",
		"../rmqadmin",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "rmqadmin" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("RABBITMQ_ENDPOINT not set, skipping integration test")
	}

	if _, err := os.Stat(config.RmqadminPath); os.IsNotExist(err) {
		t.Skipf("rmqadmin binary not found at %s, skipping integration test", config.RmqadminPath)
	}
}

// NewLibraryClient builds a client for tests that talk to the broker
// through the library instead of the CLI binary.
func NewLibraryClient(t *testing.T, config *TestConfig) rabbitmq.Client {
	client, err := rmqclient.NewWithBasicAuth(config.Endpoint, config.Username, config.Password)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// CommandRunner provides utilities for running rmqadmin commands. Every
// invocation uses a test-scoped configuration file so that tests never
// touch the operator's own ~/.rmqadmin.
type CommandRunner struct {
	config     *TestConfig
	configPath string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config:     config,
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an rmqadmin command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--config", runner.configPath}, args...)
	cmd := exec.Command(runner.config.RmqadminPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.RmqadminPath, strings.Join(full, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunWithInput executes an rmqadmin command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--config", runner.configPath}, args...)
	cmd := exec.Command(runner.config.RmqadminPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running with input: %s %s", runner.config.RmqadminPath, strings.Join(full, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// SetupTarget registers the broker node in the test-scoped configuration
func (runner *CommandRunner) SetupTarget() error {
	_, stderr, err := runner.Run("endpoints", "add", "integration", runner.config.Endpoint,
		"--username", runner.config.Username,
		"--password", runner.config.Password,
		"--no-probe")
	if err != nil {
		return fmt.Errorf("failed to add the broker endpoint: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupResource attempts to delete a test resource
func (runner *CommandRunner) CleanupResource(resourceType, name string) {
	var args []string

	switch resourceType {
	case "vhost":
		args = []string{"vhosts", "delete", name, "--force", "--idempotently"}
	case "queue":
		args = []string{"queues", "delete", name, "--force", "--idempotently"}
	case "user":
		args = []string{"users", "delete", name, "--force", "--idempotently"}
	case "exchange":
		args = []string{"exchanges", "delete", name, "--force", "--idempotently"}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, name, stdout, stderr)
	}
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}
