package commands

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/constants"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rmqclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Nodes       map[string]*NodeConfig `json:"nodes,omitempty"        yaml:"nodes,omitempty"`
	CurrentNode string                 `json:"current_node,omitempty" yaml:"current_node,omitempty"`
	Output      string                 `json:"output,omitempty"       yaml:"output,omitempty"`
}

// NodeConfig represents the connection settings of a single configured node.
type NodeConfig struct {
	Endpoint                string `json:"endpoint"                             yaml:"endpoint"`
	Username                string `json:"username,omitempty"                   yaml:"username,omitempty"`
	Password                string `json:"password,omitempty"                   yaml:"password,omitempty"`
	CACertificatePath       string `json:"ca_certificate_path,omitempty"        yaml:"ca_certificate_path,omitempty"`
	SkipTLSPeerVerification bool   `json:"skip_tls_peer_verification,omitempty" yaml:"skip_tls_peer_verification,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage rmqadmin configuration including nodes and global settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configured nodes and global settings. Passwords are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())

			return renderOutput(config, func() error {
				return displayConfigTable(config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a global configuration value. Supported keys: output, node.",
		Args:  cobra.ExactArgs(constants.TwoArgumentsMax),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGlobalConfig(loadConfig(), args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Reset a global configuration value to its default. Supported keys: output, node.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch args[0] {
			case "output":
				config.Output = OutputFormatTable
			case "node":
				config.CurrentNode = ""
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, args[0])
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file including all configured nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("configuration file", configFilePath(), force) {
				return nil
			}

			err := os.Remove(configFilePath())
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = os.Stdout.WriteString("Cleared all configuration\n")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func loadConfig() *Config {
	config := &Config{
		Nodes:       make(map[string]*NodeConfig),
		CurrentNode: viper.GetString("current_node"),
		Output:      viper.GetString("output"),
	}

	for name, nodeRaw := range viper.GetStringMap("nodes") {
		if nodeMap, ok := nodeRaw.(map[string]interface{}); ok {
			config.Nodes[name] = parseNodeConfig(nodeMap)
		}
	}

	return config
}

// parseNodeConfig parses a node configuration from a config file map.
func parseNodeConfig(nodeMap map[string]interface{}) *NodeConfig {
	node := &NodeConfig{}

	if endpoint, ok := nodeMap["endpoint"].(string); ok {
		node.Endpoint = endpoint
	}

	if username, ok := nodeMap["username"].(string); ok {
		node.Username = username
	}

	if password, ok := nodeMap["password"].(string); ok {
		node.Password = password
	}

	if path, ok := nodeMap["ca_certificate_path"].(string); ok {
		node.CACertificatePath = path
	}

	if skip, ok := nodeMap["skip_tls_peer_verification"].(bool); ok {
		node.SkipTLSPeerVerification = skip
	}

	return node
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".rmqadmin")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configFilePath returns the active config file path, defaulting to the
// standard location when no file has been read.
func configFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, _ := os.UserHomeDir()
		configFile = filepath.Join(home, ".rmqadmin", "config.yml")
	}

	return configFile
}

// resolveNodeConfig picks the node a command runs against: the --node flag
// if given, then the configured current node, then the first configured
// node, and finally the default local node.
func resolveNodeConfig(nodeFlag string) (string, *NodeConfig, error) {
	config := loadConfig()

	if nodeFlag != "" {
		node, exists := config.Nodes[nodeFlag]
		if !exists {
			return "", nil, fmt.Errorf("node '%s': %w", nodeFlag, ErrNodeNotConfigured)
		}

		return nodeFlag, node, nil
	}

	if config.CurrentNode != "" {
		node, exists := config.Nodes[config.CurrentNode]
		if !exists {
			return "", nil, fmt.Errorf("current node '%s': %w", config.CurrentNode, ErrNodeNotConfigured)
		}

		return config.CurrentNode, node, nil
	}

	if len(config.Nodes) > 0 {
		first := sortedKeys(config.Nodes)[0]

		return first, config.Nodes[first], nil
	}

	return "default", &NodeConfig{
		Endpoint: constants.DefaultEndpoint,
		Username: constants.DefaultUsername,
		Password: constants.DefaultPassword,
	}, nil
}

// CreateClient builds an API client for the node selected by the --node
// flag, falling back to the configured current node or a local default.
func CreateClient(nodeFlag string) (rabbitmq.Client, error) {
	_, node, err := resolveNodeConfig(nodeFlag)
	if err != nil {
		return nil, err
	}

	return createNodeClient(node)
}

func createNodeClient(node *NodeConfig) (rabbitmq.Client, error) {
	tlsConfig, err := nodeTLSConfig(node)
	if err != nil {
		return nil, err
	}

	clientConfig := &rabbitmq.Config{
		Endpoint:       node.Endpoint,
		Username:       node.Username,
		Password:       node.Password,
		RequestTimeout: constants.DefaultHTTPTimeout,
		TLSConfig:      tlsConfig,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = newVerboseLogger()
	}

	client, err := rmqclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func nodeTLSConfig(node *NodeConfig) (*tls.Config, error) {
	skipVerification := node.SkipTLSPeerVerification || viper.GetBool("insecure")

	if node.CACertificatePath == "" && !skipVerification {
		return nil, nil
	}

	// Peer verification is only skipped when the operator explicitly opts in
	// #nosec G402
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: skipVerification,
	}

	if node.CACertificatePath != "" {
		// The path comes from the operator's own configuration file
		// #nosec G304
		pem, err := os.ReadFile(node.CACertificatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate file: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("'%s': %w", node.CACertificatePath, ErrInvalidCACertificate)
		}

		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

// maskSecrets returns a copy of the configuration that is safe to display.
func maskSecrets(config *Config) *Config {
	masked := &Config{
		Nodes:       make(map[string]*NodeConfig, len(config.Nodes)),
		CurrentNode: config.CurrentNode,
		Output:      config.Output,
	}

	for name, node := range config.Nodes {
		copied := *node
		if copied.Password != "" {
			copied.Password = constants.MaskedSecret
		}

		masked.Nodes[name] = &copied
	}

	return masked
}

// setGlobalConfig sets a global configuration value.
func setGlobalConfig(config *Config, key, value string) error {
	switch key {
	case "output":
		if value != OutputFormatTable && value != OutputFormatJSON && value != OutputFormatYAML {
			return fmt.Errorf("'%s': %w", value, constants.ErrInvalidOutputFormat)
		}

		config.Output = value
	case "node":
		if _, exists := config.Nodes[value]; !exists {
			return fmt.Errorf("node '%s': %w", value, ErrNodeNotConfigured)
		}

		config.CurrentNode = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Set %s = %s\n", key, value)

	return nil
}

// displayConfigTable displays the configuration in table format.
func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"Current Node", formatConfigValue(config.CurrentNode)})

	_, _ = os.Stdout.WriteString("Global Configuration:\n")

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return displayNodesTable(config)
}

func displayNodesTable(config *Config) error {
	if len(config.Nodes) == 0 {
		_, _ = os.Stdout.WriteString("\nNo nodes configured. Use 'rmqadmin endpoints add' to add one.\n")

		return nil
	}

	_, _ = os.Stdout.WriteString("\nConfigured Nodes:\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Endpoint", "Username", "TLS Peer Verification", "Current")

	for _, name := range sortedKeys(config.Nodes) {
		node := config.Nodes[name]
		_ = table.Append([]string{
			name,
			node.Endpoint,
			formatConfigValue(node.Username),
			formatPeerVerification(node.SkipTLSPeerVerification),
			formatCurrentIndicator(name == config.CurrentNode),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render nodes table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatPeerVerification(skipped bool) string {
	if skipped {
		return "disabled"
	}

	return "enabled"
}

func formatCurrentIndicator(isCurrent bool) string {
	if isCurrent {
		return "✓"
	}

	return ""
}
