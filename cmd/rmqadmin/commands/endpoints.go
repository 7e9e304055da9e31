package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/constants"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEndpointsCommand creates the endpoints command group.
func NewEndpointsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint"},
		Short:   "Manage cluster endpoints",
		Long:    "Add, list, remove, select and probe the HTTP API endpoints of known clusters",
	}

	cmd.AddCommand(newEndpointsAddCommand())
	cmd.AddCommand(newEndpointsListCommand())
	cmd.AddCommand(newEndpointsRemoveCommand())
	cmd.AddCommand(newEndpointsUseCommand())
	cmd.AddCommand(newEndpointsProbeCommand())

	return cmd
}

func newEndpointsAddCommand() *cobra.Command {
	var (
		username          string
		password          string
		caCertificatePath string
		skipVerification  bool
		overwrite         bool
		noProbe           bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME ENDPOINT",
		Short: "Add a cluster endpoint",
		Long:  "Add a cluster HTTP API endpoint to the configuration and verify that it can be reached",
		Args:  cobra.ExactArgs(constants.TwoArgumentsMax),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			endpoint, err := normalizeNodeEndpoint(args[1])
			if err != nil {
				return err
			}

			config := loadConfig()

			if _, exists := config.Nodes[name]; exists && !overwrite {
				return fmt.Errorf("node '%s': %w", name, ErrNodeAlreadyConfigured)
			}

			if password == "" {
				password, err = promptPassword()
				if err != nil {
					return err
				}
			}

			node := &NodeConfig{
				Endpoint:                endpoint,
				Username:                username,
				Password:                password,
				CACertificatePath:       caCertificatePath,
				SkipTLSPeerVerification: skipVerification,
			}

			if !noProbe {
				err := probeNewNode(node)
				if err != nil {
					return err
				}
			}

			config.Nodes[name] = node

			if config.CurrentNode == "" {
				config.CurrentNode = name
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Added node '%s' (%s)\n", name, endpoint)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", constants.DefaultUsername, "username to authenticate with")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to authenticate with (prompted when omitted)")
	cmd.Flags().StringVar(&caCertificatePath, "ca-certificate", "", "path to a CA certificate bundle in PEM format")
	cmd.Flags().BoolVar(&skipVerification, "skip-tls-peer-verification", false, "do not verify the TLS peer certificate of this node")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the node if it is already configured")
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip the reachability probe")

	return cmd
}

func newEndpointsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured endpoints",
		Long:  "Display all configured cluster endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if len(config.Nodes) == 0 {
				_, _ = os.Stdout.WriteString("No nodes configured. Use 'rmqadmin endpoints add' to add one.\n")

				return nil
			}

			type endpointInfo struct {
				Name     string `json:"name"               yaml:"name"`
				Endpoint string `json:"endpoint"           yaml:"endpoint"`
				Username string `json:"username,omitempty" yaml:"username,omitempty"`
				Current  bool   `json:"current"            yaml:"current"`
			}

			infos := make([]endpointInfo, 0, len(config.Nodes))
			for _, name := range sortedKeys(config.Nodes) {
				node := config.Nodes[name]
				infos = append(infos, endpointInfo{
					Name:     name,
					Endpoint: node.Endpoint,
					Username: node.Username,
					Current:  name == config.CurrentNode,
				})
			}

			return renderOutput(infos, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Endpoint", "Username", "Current")

				for _, info := range infos {
					_ = table.Append([]string{info.Name, info.Endpoint, formatConfigValue(info.Username), formatCurrentIndicator(info.Current)})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newEndpointsRemoveCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"delete"},
		Short:   "Remove a configured endpoint",
		Long:    "Remove a cluster endpoint from the configuration",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			config := loadConfig()

			if _, exists := config.Nodes[name]; !exists {
				return fmt.Errorf("node '%s': %w", name, ErrNodeNotConfigured)
			}

			if !confirmDeletion("node", name, force) {
				return nil
			}

			delete(config.Nodes, name)

			if config.CurrentNode == name {
				config.CurrentNode = ""
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Removed node '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force removal without confirmation")

	return cmd
}

func newEndpointsUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Select the current endpoint",
		Long:  "Set a configured cluster endpoint as the one commands run against by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			config := loadConfig()

			if _, exists := config.Nodes[name]; !exists {
				return fmt.Errorf("node '%s': %w", name, ErrNodeNotConfigured)
			}

			config.CurrentNode = name

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Node '%s' is now the current node\n", name)

			return nil
		},
	}
}

func newEndpointsProbeCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "probe [NAME...]",
		Short: "Probe endpoint reachability",
		Long:  "Probe configured cluster endpoints concurrently and report which ones accept their configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			names := args
			if len(names) == 0 {
				names = sortedKeys(config.Nodes)
			}

			if len(names) == 0 {
				return constants.ErrNoConfiguredNodes
			}

			clients := make(map[string]rabbitmq.Client, len(names))

			defer func() {
				for _, client := range clients {
					_ = client.Close()
				}
			}()

			for _, name := range names {
				node, exists := config.Nodes[name]
				if !exists {
					return fmt.Errorf("node '%s': %w", name, ErrNodeNotConfigured)
				}

				client, err := createNodeClient(node)
				if err != nil {
					return err
				}

				clients[node.Endpoint] = client
			}

			prober := rabbitmq.NewNodesProber(clients, concurrency)

			results, err := prober.Probe(context.Background())
			if err != nil {
				return fmt.Errorf("failed to probe nodes: %w", err)
			}

			return renderProbeResults(results)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", constants.DefaultConcurrencyLimit, "number of nodes probed concurrently")

	return cmd
}

func renderProbeResults(results []rabbitmq.NodeProbeResult) error {
	type probeInfo struct {
		Endpoint string `json:"endpoint"           yaml:"endpoint"`
		Reached  bool   `json:"reached"            yaml:"reached"`
		Username string `json:"username,omitempty" yaml:"username,omitempty"`
		Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
		Error    string `json:"error,omitempty"    yaml:"error,omitempty"`
	}

	infos := make([]probeInfo, 0, len(results))

	for _, result := range results {
		info := probeInfo{Endpoint: result.Endpoint, Reached: result.Outcome.Reached()}

		if result.Outcome.Reached() {
			info.Username = result.Outcome.Details.CurrentUser.Name
			info.Duration = result.Outcome.Details.Duration.String()
		} else {
			info.Error = result.Outcome.Err.Error()
		}

		infos = append(infos, info)
	}

	err := renderOutput(infos, func() error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Endpoint", "Reached", "Username", "Duration", "Error")

		for _, info := range infos {
			_ = table.Append([]string{
				info.Endpoint,
				formatBool(info.Reached),
				formatConfigValue(info.Username),
				formatConfigValue(info.Duration),
				formatConfigValue(abbreviate(info.Error)),
			})
		}

		_ = table.Render()

		return nil
	})
	if err != nil {
		return err
	}

	endpoint, reached := rabbitmq.FirstReached(results)
	if !reached {
		return ErrNoReachableNodes
	}

	if viper.GetString("output") == OutputFormatTable {
		_, _ = fmt.Fprintf(os.Stdout, "First reachable node: %s\n", endpoint)
	}

	return nil
}

// probeNewNode verifies that a node about to be added is reachable with
// the supplied credentials.
func probeNewNode(node *NodeConfig) error {
	client, err := createNodeClient(node)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	outcome := client.ProbeReachability(context.Background())
	if !outcome.Reached() {
		return fmt.Errorf("node at %s could not be reached: %w", node.Endpoint, outcome.Err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Probed %s: authenticated as '%s' in %s\n",
		node.Endpoint, outcome.Details.CurrentUser.Name, outcome.Details.Duration)

	return nil
}

// normalizeNodeEndpoint validates an endpoint URL. The scheme defaults to
// http, which is what the management plugin serves unless TLS is
// configured.
func normalizeNodeEndpoint(endpoint string) (string, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint URL: %w", err)
	}

	if parsed.Host == "" {
		return "", constants.ErrNoEndpoint
	}

	return strings.TrimSuffix(endpoint, "/"), nil
}
