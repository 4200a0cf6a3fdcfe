// ABOUTME: Hubs command for route-econ CLI
// ABOUTME: Lists airports ranked by inbound daily demand

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/markalston/route-economics/cli/internal/client"
	"github.com/markalston/route-economics/cli/internal/styles"
	"github.com/spf13/cobra"
)

var hubsLimit int

var hubsCmd = &cobra.Command{
	Use:   "hubs",
	Short: "Rank airports by inbound demand",
	Long:  `List airports ranked by total daily passengers flying in, highest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHubs(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(hubsCmd)
	hubsCmd.Flags().IntVar(&hubsLimit, "limit", 10, "Number of airports to show (0 for all)")
}

func runHubs(ctx context.Context, w io.Writer) int {
	if hubsLimit < 0 {
		fmt.Fprintln(w, "Error: --limit must not be negative")
		return 2
	}

	ranks, err := client.New(GetAPIURL()).Hubs(ctx, hubsLimit)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(ranks, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatHubsTable(ranks))
	return 0
}

func formatHubsTable(ranks []client.HubRank) string {
	rows := make([][]string, 0, len(ranks))
	for i, r := range ranks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Airport,
			strconv.FormatFloat(r.Total, 'f', 0, 64),
		})
	}
	return styles.Title.Render("Hub ranking") + "\n" +
		styles.Table([]string{"#", "Airport", "Passengers/day"}, rows)
}
