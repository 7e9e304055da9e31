package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Inspect cluster members",
		Long:    "List cluster members and inspect their runtime state and memory footprint",
	}

	cmd.AddCommand(newNodesListCommand())
	cmd.AddCommand(newNodesGetCommand())
	cmd.AddCommand(newNodesMemoryCommand())

	return cmd
}

func newNodesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cluster members",
		Long:  "Display all members of the cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			nodes, err := client.Nodes().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list nodes: %w", err)
			}

			return renderOutput(nodes, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Uptime", "Processors", "Run Queue", "Memory Alarm", "Disk Alarm", "Drained")

				for _, node := range nodes {
					_ = table.Append([]string{
						node.Name,
						formatUptime(node.Uptime),
						strconv.FormatUint(uint64(node.Processors), 10),
						strconv.FormatUint(uint64(node.RunQueue), 10),
						formatBool(node.HasMemoryAlarmInEffect),
						formatBool(node.HasFreeDiskSpaceAlarm),
						formatBool(node.BeingDrained),
					})
				}

				_ = table.Render()

				return nil
			})
		},
	}
}

func newNodesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a cluster member",
		Long:  "Display the runtime state of a single cluster member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			node, err := client.Nodes().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch node '%s': %w", args[0], err)
			}

			return renderOutput(node, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append([]string{"Name", node.Name})
				_ = table.Append([]string{"Uptime", formatUptime(node.Uptime)})
				_ = table.Append([]string{"OS PID", node.OSPid})
				_ = table.Append([]string{"Processors", strconv.FormatUint(uint64(node.Processors), 10)})
				_ = table.Append([]string{"Run Queue", strconv.FormatUint(uint64(node.RunQueue), 10)})
				_ = table.Append([]string{"Erlang Processes", strconv.FormatUint(uint64(node.TotalErlangProcesses), 10)})
				_ = table.Append([]string{"File Descriptors", strconv.FormatUint(uint64(node.FDTotal), 10)})
				_ = table.Append([]string{"Memory High Watermark", formatBytes(node.MemoryHighWatermark)})
				_ = table.Append([]string{"Memory Alarm", formatBool(node.HasMemoryAlarmInEffect)})
				_ = table.Append([]string{"Free Disk Space Low Watermark", formatBytes(node.FreeDiskSpaceLowWatermark)})
				_ = table.Append([]string{"Disk Alarm", formatBool(node.HasFreeDiskSpaceAlarm)})
				_ = table.Append([]string{"Rates Mode", node.RatesMode})
				_ = table.Append([]string{"Being Drained", formatBool(node.BeingDrained)})
				_ = table.Append([]string{"Enabled Plugins", abbreviate(strings.Join(node.EnabledPlugins, ", "))})

				_ = table.Render()

				return nil
			})
		},
	}
}

func newNodesMemoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "memory NAME",
		Aliases: []string{"memory-breakdown"},
		Short:   "Show a node's memory footprint",
		Long:    "Display the memory footprint breakdown of a single cluster member",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Flag("node").Value.String())
			if err != nil {
				return err
			}

			ctx := context.Background()

			footprint, err := client.Nodes().GetMemoryFootprint(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch memory footprint of node '%s': %w", args[0], err)
			}

			return renderOutput(footprint, func() error {
				breakdown := footprint.Breakdown
				if breakdown == nil {
					_, _ = os.Stdout.WriteString("No memory breakdown reported\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Category", "Memory")

				for _, row := range memoryBreakdownRows(breakdown) {
					_ = table.Append([]string{row.label, formatBytes(row.value)})
				}

				_ = table.Render()

				_, _ = fmt.Fprintf(os.Stdout, "Total (strategy %s): %s\n",
					breakdown.CalculationStrategy, formatBytes(breakdown.Total.Max()))

				return nil
			})
		},
	}
}

type memoryRow struct {
	label string
	value uint64
}

func memoryBreakdownRows(breakdown *rabbitmq.NodeMemoryBreakdown) []memoryRow {
	return []memoryRow{
		{"Connection Readers", breakdown.ConnectionReaders},
		{"Connection Writers", breakdown.ConnectionWriters},
		{"Connection Channels", breakdown.ConnectionChannels},
		{"Connection Other", breakdown.ConnectionOther},
		{"Classic Queue Processes", breakdown.ClassicQueueProcs},
		{"Quorum Queue Processes", breakdown.QuorumQueueProcs},
		{"Stream Processes", breakdown.StreamQueueProcs},
		{"Stream Replica Readers", breakdown.StreamQueueReplicaReaderProcs},
		{"Stream Coordinator", breakdown.StreamQueueCoordinatorProcs},
		{"Plugins", breakdown.Plugins},
		{"Metadata Store", breakdown.MetadataStore},
		{"Other Processes", breakdown.OtherProcs},
		{"Metrics", breakdown.Metrics},
		{"Management DB", breakdown.ManagementDB},
		{"Mnesia", breakdown.Mnesia},
		{"Quorum Queue ETS Tables", breakdown.QuorumQueueETSTables},
		{"Metadata Store ETS Tables", breakdown.MetadataStoreETSTables},
		{"Other ETS Tables", breakdown.OtherETSTables},
		{"Binary Heap", breakdown.BinaryHeap},
		{"Message Indices", breakdown.MessageIndices},
		{"Code", breakdown.Code},
		{"Atom Table", breakdown.AtomTable},
		{"Other System", breakdown.OtherSystem},
		{"Allocated But Unused", breakdown.AllocatedButUnused},
		{"Reserved But Unallocated", breakdown.ReservedButUnallocated},
	}
}

// formatUptime renders the node uptime, reported in milliseconds.
func formatUptime(uptime uint64) string {
	return (time.Duration(uptime) * time.Millisecond).Round(time.Second).String()
}
