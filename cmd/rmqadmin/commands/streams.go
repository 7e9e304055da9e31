package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewStreamsCommand creates the streams command group.
func NewStreamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "streams",
		Aliases: []string{"stream"},
		Short:   "Manage streams",
		Long:    "List, declare and delete streams",
	}

	cmd.AddCommand(newStreamsListCommand())
	cmd.AddCommand(newStreamsGetCommand())
	cmd.AddCommand(newStreamsDeclareCommand())
	cmd.AddCommand(newStreamsDeleteCommand())

	return cmd
}

func newStreamsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List streams in all virtual hosts",
		Long:  "Display streams across all virtual hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			queues, err := client.Queues().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list streams: %w", err)
			}

			streams := make([]rabbitmq.QueueInfo, 0, len(queues))
			for _, queue := range queues {
				if queue.Type == rabbitmq.QueueTypeStream {
					streams = append(streams, queue)
				}
			}

			return renderOutput(streams, func() error {
				return renderQueuesTable(streams)
			})
		},
	}
}

func newStreamsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a stream",
		Long:  "Display a single stream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			stream, err := client.Queues().GetStream(ctx, vhost, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch stream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			return renderOutput(stream, func() error {
				return renderQueueDetailTable(stream)
			})
		},
	}
}

func newStreamsDeclareCommand() *cobra.Command {
	var (
		expiration      string
		maxLengthBytes  uint64
		maxSegmentBytes uint64
		arguments       map[string]string
	)

	cmd := &cobra.Command{
		Use:     "declare NAME",
		Aliases: []string{"create"},
		Short:   "Declare a stream",
		Long:    "Declare a stream with an optional retention time and size limits",
		Args:    cobra.ExactArgs(1),
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

			params := rabbitmq.NewStreamParams(args[0], expiration)
			if maxLengthBytes > 0 {
				params = params.WithMaxLengthBytes(maxLengthBytes)
			}

			if maxSegmentBytes > 0 {
				params = params.WithMaxSegmentLengthBytes(maxSegmentBytes)
			}

			for key, value := range optionalArgumentsFromFlags(arguments) {
				params = params.WithArgument(key, value)
			}

			if err := client.Queues().DeclareStream(ctx, vhost, params); err != nil {
				return fmt.Errorf("failed to declare stream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Declared stream '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().StringVar(&expiration, "expiration", "", "Retention time, e.g. '7D' or '12h'. Empty disables expiration")
	cmd.Flags().Uint64Var(&maxLengthBytes, "max-length-bytes", 0, "Total stream size limit in bytes")
	cmd.Flags().Uint64Var(&maxSegmentBytes, "max-segment-length-bytes", 0, "Stream segment file size limit in bytes")
	cmd.Flags().StringToStringVar(&arguments, "arg", nil, "Optional stream argument as key=value (can be repeated)")

	return cmd
}

func newStreamsDeleteCommand() *cobra.Command {
	var (
		force        bool
		idempotently bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stream",
		Long:  "Delete a stream in the selected virtual host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDeletion("stream", args[0], force) {
				return nil
			}

			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()
			vhost := viper.GetString("vhost")

			if err := client.Queues().DeleteStream(ctx, vhost, args[0], idempotently); err != nil {
				return fmt.Errorf("failed to delete stream '%s' in virtual host '%s': %w", args[0], vhost, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted stream '%s' in virtual host '%s'\n", args[0], vhost)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&idempotently, "idempotently", false, "Do not fail if the stream is absent")

	return cmd
}
