// ABOUTME: Compute command for route-econ CLI
// ABOUTME: Runs the pipeline locally and writes CSV, KML and JSON exports

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/markalston/route-economics/backend/cache"
	"github.com/markalston/route-economics/backend/config"
	"github.com/markalston/route-economics/backend/export"
	"github.com/markalston/route-economics/backend/models"
	"github.com/markalston/route-economics/backend/services"
	"github.com/spf13/cobra"
)

var (
	computeDataDir   string
	computeOutDir    string
	computeOverwrite bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Run the pipeline locally",
	Long: `Run the route economics pipeline without a backend and write the results
as CSV grids, a long-form routes.csv, a KML network map and hub rankings.

Settings are read from the environment and .env the same way the backend reads them.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCompute(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(computeCmd)
	computeCmd.Flags().StringVar(&computeDataDir, "data-dir", "data", "Directory for stored artifacts")
	computeCmd.Flags().StringVar(&computeOutDir, "out", "out", "Directory for exported files")
	computeCmd.Flags().BoolVar(&computeOverwrite, "overwrite", false, "Recompute derived artifacts even when stored")
}

func runCompute(ctx context.Context, w io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	store, err := cache.NewFileStore(computeDataDir)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	pipeline, err := services.NewPipeline(cfg.AirportProvider(), cache.NewMemo(store, computeOverwrite, services.KeyAirports), opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	res, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	files, err := writeExports(computeOutDir, res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	for _, f := range files {
		fmt.Fprintln(w, f)
	}

	failures := 0
	for _, table := range res.FlightTimes {
		failures += len(table.Failures)
	}
	if failures > 0 {
		fmt.Fprintf(w, "%d routes could not be computed, see routes.csv\n", failures)
		return 1
	}
	return 0
}

type exportFile struct {
	name  string
	write func(io.Writer) error
}

// writeExports writes every export for res under dir and returns the paths written
func writeExports(dir string, res *services.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	steps := []exportFile{
		{"distances.csv", func(w io.Writer) error { return export.GridCSV(w, res.Distances, export.FormatFloat) }},
		{"demand.csv", func(w io.Writer) error { return export.GridCSV(w, res.Demand, export.FormatInt) }},
		{"routes.csv", func(w io.Writer) error { return export.RoutesCSV(w, res) }},
		{"network.kml", func(w io.Writer) error { return export.NetworkKML(w, res) }},
		{"hub-rankings.json", func(w io.Writer) error { return export.HubRankingsJSON(w, res.HubRankings) }},
	}
	for _, a := range res.Aircraft {
		minutes := res.FlightTimes[a.Name].Minutes
		costs := res.Costs[a.Name]
		steps = append(steps,
			exportFile{"flight-times-" + a.Name + ".csv", func(w io.Writer) error { return export.GridCSV(w, minutes, export.FormatFloat) }},
			exportFile{"flight-times-" + a.Name + "-hms.csv", func(w io.Writer) error { return export.GridCSV(w, minutes, services.FormatHMS) }},
			exportFile{"costs-" + a.Name + ".csv", func(w io.Writer) error { return export.GridCSV(w, costs, formatCost) }},
		)
	}

	for _, s := range steps {
		if err := write(s.name, s.write); err != nil {
			return written, err
		}
	}
	return written, nil
}

func formatCost(v float64) string {
	return export.FormatFloat(models.Round(v, 2))
}
