package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewParametersCommand creates the parameters command group.
func NewParametersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parameters",
		Aliases: []string{"parameter"},
		Short:   "Manage runtime parameters",
		Long:    "List, set and clear runtime parameters, both virtual host-scoped and global ones",
	}

	cmd.AddCommand(newParametersListCommand())
	cmd.AddCommand(newParametersListInCommand())
	cmd.AddCommand(newParametersGetCommand())
	cmd.AddCommand(newParametersSetCommand())
	cmd.AddCommand(newParametersClearCommand())
	cmd.AddCommand(newParametersClearAllCommand())
	cmd.AddCommand(newGlobalParametersCommand())

	return cmd
}

func newParametersListCommand() *cobra.Command {
	var component string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runtime parameters",
		Long:  "Display runtime parameters across all virtual hosts, optionally of a single component",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var parameters []rabbitmq.RuntimeParameter
			if component != "" {
				parameters, err = client.Parameters().ListOfComponent(ctx, component)
			} else {
				parameters, err = client.Parameters().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list runtime parameters: %w", err)
			}

			return renderOutput(parameters, func() error {
				return renderParametersTable(parameters)
			})
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Only list parameters of this component, e.g. 'federation-upstream'")

	return cmd
}

func newParametersListInCommand() *cobra.Command {
	var component string

	cmd := &cobra.Command{
		Use:   "list-in",
		Short: "List runtime parameters in a virtual host",
		Long:  "Display runtime parameters of a component in the selected virtual host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			parameters, err := client.Parameters().ListOfComponentIn(ctx, component, vhost)
			if err != nil {
				return fmt.Errorf("failed to list runtime parameters in virtual host '%s': %w", vhost, err)
			}

			return renderOutput(parameters, func() error {
				return renderParametersTable(parameters)
			})
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Component the parameters belong to")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func newParametersGetCommand() *cobra.Command {
	var component string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Show a runtime parameter",
		Long:  "Display a single runtime parameter of a component in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			parameter, err := client.Parameters().Get(ctx, component, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch runtime parameter '%s': %w", args[0], err)
			}

			return renderOutput(parameter, func() error {
				return renderParametersTable([]rabbitmq.RuntimeParameter{*parameter})
			})
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Component the parameter belongs to")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func newParametersSetCommand() *cobra.Command {
	var (
		component string
		value     string
	)

	cmd := &cobra.Command{
		Use:     "set NAME",
		Aliases: []string{"upsert"},
		Short:   "Set a runtime parameter",
		Long:    "Set a runtime parameter of a component in the selected virtual host. The value is a JSON object.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseJSONObject(value)
			if err != nil {
				return fmt.Errorf("failed to parse the parameter value: %w", err)
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			definition := &rabbitmq.RuntimeParameterDefinition{
				Name:        args[0],
				VirtualHost: vhost,
				Component:   component,
				Value:       parsed,
			}

			if err := client.Parameters().Upsert(ctx, definition); err != nil {
				return fmt.Errorf("failed to set runtime parameter '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set runtime parameter '%s' of component '%s' in virtual host '%s'\n", args[0], component, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Component the parameter belongs to")
	cmd.Flags().StringVar(&value, "value", "", "Parameter value as a JSON object")
	_ = cmd.MarkFlagRequired("component")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newParametersClearCommand() *cobra.Command {
	var (
		component    string
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "clear NAME",
		Short: "Clear a runtime parameter",
		Long:  "Clear a runtime parameter of a component in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("runtime parameter", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Parameters().Clear(ctx, component, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to clear runtime parameter '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared runtime parameter '%s' of component '%s' in virtual host '%s'\n", args[0], component, vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Component the parameter belongs to")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the parameter is absent")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func newParametersClearAllCommand() *cobra.Command {
	var (
		component string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "clear-all",
		Short: "Clear all runtime parameters",
		Long:  "Clear every runtime parameter in the cluster, or every parameter of one component",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := "all components"
			if component != "" {
				scope = component
			}

			if !confirmDeletion("runtime parameters of", scope, force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if component != "" {
				err = client.Parameters().ClearAllOfComponent(ctx, component)
			} else {
				err = client.Parameters().ClearAll(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to clear runtime parameters: %w", err)
			}

			_, _ = os.Stdout.WriteString("Cleared runtime parameters\n")

			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Only clear parameters of this component")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func newGlobalParametersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Manage global runtime parameters",
		Long:  "List, set and clear cluster-wide runtime parameters",
	}

	cmd.AddCommand(newGlobalParametersListCommand())
	cmd.AddCommand(newGlobalParametersGetCommand())
	cmd.AddCommand(newGlobalParametersSetCommand())
	cmd.AddCommand(newGlobalParametersClearCommand())

	return cmd
}

func newGlobalParametersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List global runtime parameters",
		Long:  "Display all cluster-wide runtime parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			parameters, err := client.Parameters().ListGlobal(ctx)
			if err != nil {
				return fmt.Errorf("failed to list global runtime parameters: %w", err)
			}

			return renderOutput(parameters, func() error {
				return renderGlobalParametersTable(parameters)
			})
		},
	}
}

func newGlobalParametersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a global runtime parameter",
		Long:  "Display a single cluster-wide runtime parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			parameter, err := client.Parameters().GetGlobal(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch global runtime parameter '%s': %w", args[0], err)
			}

			return renderOutput(parameter, func() error {
				return renderGlobalParametersTable([]rabbitmq.GlobalRuntimeParameter{*parameter})
			})
		},
	}
}

func newGlobalParametersSetCommand() *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:     "set NAME",
		Aliases: []string{"upsert"},
		Short:   "Set a global runtime parameter",
		Long:    "Set a cluster-wide runtime parameter. The value is parsed as JSON; values that are not valid JSON are passed on as strings.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parsed interface{}
			if err := json.Unmarshal([]byte(value), &parsed); err != nil {
				parsed = value
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			definition := &rabbitmq.GlobalRuntimeParameterDefinition{
				Name:  args[0],
				Value: parsed,
			}

			if err := client.Parameters().UpsertGlobal(ctx, definition); err != nil {
				return fmt.Errorf("failed to set global runtime parameter '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set global runtime parameter '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Parameter value as JSON or a plain string")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newGlobalParametersClearCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "clear NAME",
		Short: "Clear a global runtime parameter",
		Long:  "Clear a cluster-wide runtime parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("global runtime parameter", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Parameters().ClearGlobal(ctx, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to clear global runtime parameter '%s': %w", args[0], err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Cleared global runtime parameter '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the parameter is absent")

	return cmd
}

func renderParametersTable(parameters []rabbitmq.RuntimeParameter) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Component", "Virtual Host", "Value")

	for _, parameter := range parameters {
		_ = table.Append([]string{
			parameter.Name,
			parameter.Component,
			parameter.VirtualHost,
			abbreviate(formatArguments(parameter.Value)),
		})
	}

	_ = table.Render()

	return nil
}

func renderGlobalParametersTable(parameters []rabbitmq.GlobalRuntimeParameter) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Value")

	for _, parameter := range parameters {
		_ = table.Append([]string{
			parameter.Name,
			abbreviate(fmt.Sprintf("%v", parameter.Value)),
		})
	}

	_ = table.Render()

	return nil
}
