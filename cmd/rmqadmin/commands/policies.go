package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewPoliciesCommand creates the policies command group.
func NewPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy"},
		Short:   "Manage policies",
		Long:    "List, declare and delete policies",
	}

	addPolicySubcommands(cmd, false)

	return cmd
}

// NewOperatorPoliciesCommand creates the operator-policies command group.
// Operator policies are merged with regular policies by the broker and
// cannot be overridden by applications.
func NewOperatorPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operator-policies",
		Aliases: []string{"operator-policy"},
		Short:   "Manage operator policies",
		Long:    "List, declare and delete operator policies",
	}

	addPolicySubcommands(cmd, true)

	return cmd
}

func addPolicySubcommands(cmd *cobra.Command, operator bool) {
	cmd.AddCommand(newPoliciesListCommand(operator))
	cmd.AddCommand(newPoliciesListInCommand(operator))
	cmd.AddCommand(newPoliciesGetCommand(operator))
	cmd.AddCommand(newPoliciesDeclareCommand(operator))
	cmd.AddCommand(newPoliciesDeleteCommand(operator))
}

func policyKind(operator bool) string {
	if operator {
		return "operator policy"
	}

	return "policy"
}

func policyKindWithArticle(operator bool) string {
	if operator {
		return "an operator policy"
	}

	return "a policy"
}

func newPoliciesListCommand(operator bool) *cobra.Command {
	kind := policyKind(operator)

	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s definitions in all virtual hosts", kind),
		Long:  fmt.Sprintf("Display every %s across all virtual hosts", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			var policies []rabbitmq.Policy
			if operator {
				policies, err = client.Policies().ListOperator(ctx)
			} else {
				policies, err = client.Policies().List(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list %s definitions: %w", kind, err)
			}

			return renderOutput(policies, func() error {
				return renderPoliciesTable(policies)
			})
		},
	}
}

func newPoliciesListInCommand(operator bool) *cobra.Command {
	kind := policyKind(operator)

	return &cobra.Command{
		Use:   "list-in",
		Short: fmt.Sprintf("List %s definitions in a virtual host", kind),
		Long:  fmt.Sprintf("Display every %s in the selected virtual host", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			var policies []rabbitmq.Policy
			if operator {
				policies, err = client.Policies().ListOperatorIn(ctx, vhost)
			} else {
				policies, err = client.Policies().ListIn(ctx, vhost)
			}

			if err != nil {
				return fmt.Errorf("failed to list %s definitions in virtual host '%s': %w", kind, vhost, err)
			}

			return renderOutput(policies, func() error {
				return renderPoliciesTable(policies)
			})
		},
	}
}

func newPoliciesGetCommand(operator bool) *cobra.Command {
	kind := policyKind(operator)

	return &cobra.Command{
		Use:   "get NAME",
		Short: fmt.Sprintf("Show %s", policyKindWithArticle(operator)),
		Long:  fmt.Sprintf("Display a single %s in the selected virtual host", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			var policy *rabbitmq.Policy
			if operator {
				policy, err = client.Policies().GetOperator(ctx, vhost, args[0])
			} else {
				policy, err = client.Policies().Get(ctx, vhost, args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to fetch %s '%s' in virtual host '%s': %w", kind, args[0], vhost, err)
			}

			return renderOutput(policy, func() error {
				return renderPoliciesTable([]rabbitmq.Policy{*policy})
			})
		},
	}
}

func newPoliciesDeclareCommand(operator bool) *cobra.Command {
	kind := policyKind(operator)

	var (
		pattern    string
		applyTo    string
		priority   int32
		definition string
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   fmt.Sprintf("Declare %s", policyKindWithArticle(operator)),
		Long:    fmt.Sprintf("Declare %s in the selected virtual host. The definition is a JSON object.", policyKindWithArticle(operator)),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(args[0]); err != nil {
				return err
			}

			parsed, err := parseJSONObject(definition)
			if err != nil {
				return fmt.Errorf("failed to parse the %s definition: %w", kind, err)
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := &rabbitmq.PolicyParams{
				VirtualHost: vhost,
				Name:        args[0],
				Pattern:     pattern,
				ApplyTo:     rabbitmq.PolicyTarget(applyTo),
				Priority:    priority,
				Definition:  parsed,
			}

			if operator {
				err = client.Policies().DeclareOperator(ctx, params)
			} else {
				err = client.Policies().Declare(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to declare %s '%s' in virtual host '%s': %w", kind, args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared %s '%s' in virtual host '%s'\n", kind, args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Regular expression matched against object names")
	cmd.Flags().StringVar(&applyTo, "apply-to", string(rabbitmq.PolicyTargetAll), "Object kind the policy applies to (queues, quorum_queues, streams, exchanges, all, ...)")
	cmd.Flags().Int32Var(&priority, "priority", 0, "Policy priority, higher wins")
	cmd.Flags().StringVar(&definition, "definition", "", "Policy definition as a JSON object")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("definition")

	return cmd
}

func newPoliciesDeleteCommand(operator bool) *cobra.Command {
	kind := policyKind(operator)

	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME [NAME...]",
		Short: fmt.Sprintf("Delete one or more %s definitions", kind),
		Long:  fmt.Sprintf("Delete %s definitions in the selected virtual host", kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion(kind, strings.Join(args, "', '"), force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			switch {
			case len(args) == 1 && operator:
				err = client.Policies().DeleteOperator(ctx, vhost, args[0], idempotently)
			case len(args) == 1:
				err = client.Policies().Delete(ctx, vhost, args[0], idempotently)
			case operator:
				err = client.Policies().DeleteMultipleOperatorIn(ctx, vhost, args)
			default:
				err = client.Policies().DeleteMultipleIn(ctx, vhost, args)
			}

			if err != nil {
				return fmt.Errorf("failed to delete %s definitions in virtual host '%s': %w", kind, vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted %d %s definition(s) in virtual host '%s'\n", len(args), kind, vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the policy is absent")

	return cmd
}

func renderPoliciesTable(policies []rabbitmq.Policy) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Virtual Host", "Pattern", "Apply To", "Priority", "Definition")

	for _, policy := range policies {
		_ = table.Append([]string{
			policy.Name,
			policy.VirtualHost,
			policy.Pattern,
			string(policy.ApplyTo),
			strconv.FormatInt(int64(policy.Priority), 10),
			abbreviate(formatArguments(policy.Definition)),
		})
	}

	_ = table.Render()

	return nil
}
