// ABOUTME: Route command for route-econ CLI
// ABOUTME: Shows distance, demand, and per-aircraft time and cost for one pair

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/markalston/route-economics/cli/internal/client"
	"github.com/markalston/route-economics/cli/internal/styles"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route SOURCE DEST",
	Short: "Show one route",
	Long:  `Show distance, cruise altitude, daily demand, and each aircraft's flight time and cost for a directed airport pair.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRoute(ctx, os.Stdout, strings.ToUpper(args[0]), strings.ToUpper(args[1]))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(ctx context.Context, w io.Writer, source, dest string) int {
	summary, err := client.New(GetAPIURL()).Route(ctx, source, dest)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatRouteHuman(summary))
	}

	if !summary.Reachable {
		return 1
	}
	return 0
}

func formatRouteHuman(s *client.RouteSummary) string {
	title := styles.Title.Render(fmt.Sprintf("%s → %s", s.Source, s.Dest))
	if !s.Reachable {
		return title + "\n" + styles.StatusWarning.Render("Not served: closer than the minimum route distance")
	}

	scope := "domestic"
	if s.International {
		scope = "international"
	}
	header := fmt.Sprintf(`Distance:   %.1f nm
Bearing:    %.1f°
Altitude:   FL%d (%s)
Demand:     %d passengers/day`, s.DistanceNM, s.BearingDeg, s.CruiseAltitudeFt/100, scope, s.DailyDemand)

	rows := make([][]string, 0, len(s.Aircraft))
	for _, a := range s.Aircraft {
		if a.Error != "" {
			rows = append(rows, []string{a.Aircraft, "-", "-", styles.StatusCritical.Render(a.Error)})
			continue
		}
		rows = append(rows, []string{
			a.Aircraft,
			a.FlightTime,
			fmt.Sprintf("$%.2f", a.CostUSD),
			"",
		})
	}

	return title + "\n" + styles.Subtitle.Render(header) + "\n" +
		styles.Table([]string{"Aircraft", "Gate to gate", "Cost", "Note"}, rows)
}
