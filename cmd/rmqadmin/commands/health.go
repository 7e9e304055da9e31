package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/michaelklishin/rabbitmq-http-api-go/internal/constants"
	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health checks command group. Every check
// either passes or fails with an error that carries the reported details.
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Run health checks",
		Long:  "Run cluster and node health checks against the target node",
	}

	cmd.AddCommand(newHealthAlarmsCommand())
	cmd.AddCommand(newHealthLocalAlarmsCommand())
	cmd.AddCommand(newHealthQuorumCriticalCommand())
	cmd.AddCommand(newHealthPortListenerCommand())
	cmd.AddCommand(newHealthProtocolListenerCommand())

	return cmd
}

func newHealthAlarmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alarms",
		Short: "Check for cluster-wide alarms",
		Long:  "Fail if any resource alarms are in effect anywhere in the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Health().ClusterWideAlarms(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprint(os.Stdout, "Health check passed: no resource alarms are in effect\n")

			return nil
		},
	}
}

func newHealthLocalAlarmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "local-alarms",
		Short: "Check for local alarms",
		Long:  "Fail if any resource alarms are in effect on the target node",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Health().LocalAlarms(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprint(os.Stdout, "Health check passed: no resource alarms are in effect on the target node\n")

			return nil
		},
	}
}

func newHealthQuorumCriticalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quorum-critical",
		Short: "Check quorum criticality of the target node",
		Long:  "Fail if quorum queues, streams or the metadata store would lose their quorum if the target node was shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Health().NodeIsQuorumCritical(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprint(os.Stdout, "Health check passed: target node is not quorum critical\n")

			return nil
		},
	}
}

func newHealthPortListenerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "port-listener PORT",
		Short: "Check for an active listener on a port",
		Long:  "Fail if no active listener is found on the given port on the target node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := strconv.ParseUint(args[0], 10, 16)
			if err != nil || port == 0 {
				return constants.ErrInvalidPort
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := client.Health().PortListener(ctx, uint16(port)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Health check passed: an active listener was found on port %d\n", port)

			return nil
		},
	}
}

func newHealthProtocolListenerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "protocol-listener PROTOCOL",
		Short: "Check for an active listener of a protocol",
		Long:  "Fail if no active listener is found for the given protocol, e.g. amqp091, mqtt or stream, on the target node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			protocol := rabbitmq.SupportedProtocol(args[0])

			if err := client.Health().ProtocolListener(ctx, protocol); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Health check passed: an active listener was found for protocol '%s'\n", protocol)

			return nil
		},
	}
}
