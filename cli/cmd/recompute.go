// ABOUTME: Recompute command for route-econ CLI
// ABOUTME: Asks the backend to rerun its pipeline

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/markalston/route-economics/cli/internal/client"
	"github.com/spf13/cobra"
)

var recomputeReuse bool

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rerun the backend pipeline",
	Long:  `Rerun the backend pipeline. Derived artifacts are rebuilt unless --reuse is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRecompute(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
	recomputeCmd.Flags().BoolVar(&recomputeReuse, "reuse", false, "Reuse stored artifacts instead of rebuilding them")
}

func runRecompute(ctx context.Context, w io.Writer) int {
	resp, err := client.New(GetAPIURL()).Recompute(ctx, !recomputeReuse)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatRecomputeHuman(resp))
	return 0
}

func formatRecomputeHuman(resp *client.RecomputeResponse) string {
	keys := make([]string, 0, len(resp.Cached))
	for k := range resp.Cached {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var loaded, built int
	for _, k := range keys {
		if resp.Cached[k] {
			loaded++
		} else {
			built++
		}
	}
	return fmt.Sprintf("Generated: %s\nArtifacts: %d built, %d loaded", resp.GeneratedAt, built, loaded)
}
