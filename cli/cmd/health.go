// ABOUTME: Health command for route-econ CLI
// ABOUTME: Checks backend connectivity and pipeline readiness

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/route-economics/cli/internal/client"
	"github.com/markalston/route-economics/cli/internal/styles"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the route economics backend and whether results are ready.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	out := fmt.Sprintf(`Backend:    %s
Status:     %s
airportdb:  %s`, url, styles.Status(resp.Status), styles.Status(resp.AirportDB))
	if resp.Status == "ok" {
		out += fmt.Sprintf(`
Generated:  %s
Method:     %s
Airports:   %d
Aircraft:   %d`, resp.GeneratedAt, resp.DistanceMethod, resp.Airports, resp.Aircraft)
	}
	return out
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]any{
		"backend":   url,
		"status":    resp.Status,
		"airportdb": resp.AirportDB,
	}
	if resp.Status == "ok" {
		output["generated_at"] = resp.GeneratedAt
		output["distance_method"] = resp.DistanceMethod
		output["airports"] = resp.Airports
		output["aircraft"] = resp.Aircraft
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
