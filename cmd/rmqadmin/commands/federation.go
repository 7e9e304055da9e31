package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFederationCommand creates the federation command group.
func NewFederationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "federation",
		Short: "Manage federation upstreams and links",
		Long:  "List, declare and delete federation upstreams and inspect running federation links",
	}

	cmd.AddCommand(newFederationListUpstreamsCommand())
	cmd.AddCommand(newFederationGetUpstreamCommand())
	cmd.AddCommand(newFederationDeclareQueueUpstreamCommand())
	cmd.AddCommand(newFederationDeclareExchangeUpstreamCommand())
	cmd.AddCommand(newFederationDeleteUpstreamCommand())
	cmd.AddCommand(newFederationListLinksCommand())

	return cmd
}

func newFederationListUpstreamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-upstreams",
		Short: "List federation upstreams",
		Long:  "Display federation upstreams across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			upstreams, err := client.Federation().ListUpstreams(ctx)
			if err != nil {
				return fmt.Errorf("failed to list federation upstreams: %w", err)
			}

			return renderOutput(upstreams, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Virtual Host", "URI", "Ack Mode", "Queue", "Exchange")

				for _, upstream := range upstreams {
					_ = table.Append([]string{
						upstream.Name,
						upstream.VirtualHost,
						abbreviate(upstream.URI),
						string(upstream.AckMode),
						orNotAvailable(upstream.Queue),
						orNotAvailable(upstream.Exchange),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newFederationGetUpstreamCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-upstream NAME",
		Short: "Show a federation upstream",
		Long:  "Display a single federation upstream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			upstream, err := client.Federation().GetUpstream(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch federation upstream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(upstream, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", upstream.Name})
				_ = table.Append([]string{"Virtual Host", upstream.VirtualHost})
				_ = table.Append([]string{"URI", upstream.URI})
				_ = table.Append([]string{"Ack Mode", string(upstream.AckMode)})
				_ = table.Append([]string{"Queue", orNotAvailable(upstream.Queue)})
				_ = table.Append([]string{"Consumer Tag", orNotAvailable(upstream.ConsumerTag)})
				_ = table.Append([]string{"Exchange", orNotAvailable(upstream.Exchange)})
				_ = table.Append([]string{"Queue Type", formatQueueType(upstream.QueueType)})
				_ = table.Append([]string{"Channel Use Mode", string(upstream.ChannelUseMode)})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newFederationDeclareQueueUpstreamCommand() *cobra.Command {
	var (
		uri         string
		queue       string
		consumerTag string
		ackMode     string
	)

	cmd := &cobra.Command{
		Use:   "declare-queue-upstream NAME",
		Short: "Declare a queue federation upstream",
		Long:  "Declare a federation upstream for queue federation in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(args[0]); err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := rabbitmq.NewQueueFederationUpstreamParams(vhost, args[0], uri, rabbitmq.QueueFederationParams{
				Queue:       queue,
				ConsumerTag: consumerTag,
			})
			params.AckMode = rabbitmq.NormalizedAcknowledgementMode(ackMode)

			if err := client.Federation().DeclareUpstream(ctx, params); err != nil {
				return fmt.Errorf("failed to declare federation upstream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared federation upstream '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "AMQP URI of the upstream cluster")
	cmd.Flags().StringVar(&queue, "queue", "", "Upstream queue to federate. Empty federates the queue with the same name")
	cmd.Flags().StringVar(&consumerTag, "consumer-tag", "", "Consumer tag used by the federation link")
	cmd.Flags().StringVar(&ackMode, "ack-mode", string(rabbitmq.TransferAcknowledgementWhenConfirmed), "Acknowledgement mode (on-confirm, on-publish or no-ack)")
	_ = cmd.MarkFlagRequired("uri")

	return cmd
}

func newFederationDeclareExchangeUpstreamCommand() *cobra.Command {
	var (
		uri         string
		exchange    string
		maxHops     uint8
		queueType   string
		ttl         uint32
		messageTTL  uint32
		cleanupMode string
		ackMode     string
	)

	cmd := &cobra.Command{
		Use:   "declare-exchange-upstream NAME",
		Short: "Declare an exchange federation upstream",
		Long:  "Declare a federation upstream for exchange federation in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(args[0]); err != nil {
				return err
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			params := rabbitmq.NewExchangeFederationUpstreamParams(vhost, args[0], uri, rabbitmq.ExchangeFederationParams{
				Exchange:            exchange,
				MaxHops:             maxHops,
				QueueType:           rabbitmq.QueueType(queueType),
				TTL:                 ttl,
				MessageTTL:          messageTTL,
				ResourceCleanupMode: rabbitmq.NormalizedFederationCleanupMode(cleanupMode),
			})
			params.AckMode = rabbitmq.NormalizedAcknowledgementMode(ackMode)

			if err := client.Federation().DeclareUpstream(ctx, params); err != nil {
				return fmt.Errorf("failed to declare federation upstream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared federation upstream '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "AMQP URI of the upstream cluster")
	cmd.Flags().StringVar(&exchange, "exchange", "", "Upstream exchange to federate. Empty federates the exchange with the same name")
	cmd.Flags().Uint8Var(&maxHops, "max-hops", 0, "Maximum number of federation hops a message makes")
	cmd.Flags().StringVar(&queueType, "queue-type", string(rabbitmq.QueueTypeClassic), "Type of the internal queue used by the link")
	cmd.Flags().Uint32Var(&ttl, "expires", 0, "Expiration time of the internal upstream queue in milliseconds")
	cmd.Flags().Uint32Var(&messageTTL, "message-ttl", 0, "Message TTL in the internal upstream queue in milliseconds")
	cmd.Flags().StringVar(&cleanupMode, "resource-cleanup-mode", string(rabbitmq.FederationCleanupModeDefault), "Resource cleanup mode (default or never)")
	cmd.Flags().StringVar(&ackMode, "ack-mode", string(rabbitmq.TransferAcknowledgementWhenConfirmed), "Acknowledgement mode (on-confirm, on-publish or no-ack)")
	_ = cmd.MarkFlagRequired("uri")

	return cmd
}

func newFederationDeleteUpstreamCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete-upstream NAME",
		Short: "Delete a federation upstream",
		Long:  "Delete a federation upstream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("federation upstream", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Federation().DeleteUpstream(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete federation upstream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted federation upstream '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the upstream is absent")

	return cmd
}

func newFederationListLinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-links",
		Short: "List federation links",
		Long:  "Display the state of all running federation links",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			links, err := client.Federation().ListLinks(ctx)
			if err != nil {
				return fmt.Errorf("failed to list federation links: %w", err)
			}

			return renderOutput(links, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Upstream", "Virtual Host", "Type", "Status", "Node", "URI")

				for _, link := range links {
					_ = table.Append([]string{
						link.Upstream,
						link.VirtualHost,
						string(link.Type),
						link.Status,
						link.Node,
						abbreviate(link.URI),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}
