package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show cluster overview",
		Long:  "Display cluster-wide information: versions, object totals, queue totals and churn rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			overview, err := client.Cluster().Overview(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch cluster overview: %w", err)
			}

			return renderOutput(overview, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Cluster Name", overview.ClusterName})
				_ = table.Append([]string{"Node", overview.Node})
				_ = table.Append([]string{"Product", fmt.Sprintf("%s %s", overview.ProductName, overview.ProductVersion)})
				_ = table.Append([]string{"Erlang Version", overview.ErlangVersion})
				_ = table.Append([]string{"Erlang JIT", formatBool(overview.HasJITEnabled())})
				_ = table.Append([]string{"Connections", strconv.FormatUint(overview.ObjectTotals.Connections, 10)})
				_ = table.Append([]string{"Channels", strconv.FormatUint(overview.ObjectTotals.Channels, 10)})
				_ = table.Append([]string{"Queues", strconv.FormatUint(overview.ObjectTotals.Queues, 10)})
				_ = table.Append([]string{"Exchanges", strconv.FormatUint(overview.ObjectTotals.Exchanges, 10)})
				_ = table.Append([]string{"Consumers", strconv.FormatUint(overview.ObjectTotals.Consumers, 10)})
				_ = table.Append([]string{"Messages", strconv.FormatUint(overview.QueueTotals.Messages, 10)})
				_ = table.Append([]string{"Messages Ready", strconv.FormatUint(overview.QueueTotals.MessagesReady, 10)})
				_ = table.Append([]string{"Messages Unacknowledged", strconv.FormatUint(overview.QueueTotals.MessagesUnacknowledged, 10)})
				_ = table.Append([]string{"Statistics DB Event Queue", strconv.FormatUint(overview.StatisticsDBEventQueue, 10)})

				_ = table.Render()

				return nil
			})
		},
	}
}
