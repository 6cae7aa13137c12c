/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/perevir/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the benchmark run history",
	Long:  `List, inspect, and clear past benchmark runs stored in the SQLite history database.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSERVICE\tDIRECTION\tREQUESTS\tMEAN MS\tMIN MS\tMAX MS\tDATE")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s→%s\t%d\t%.1f\t%.1f\t%.1f\t%s\n",
				r.ID, r.ServiceName, r.SourceLang, r.TargetLang,
				r.RequestCount, r.MeanMs, r.MinMs, r.MaxMs,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the per-request measurements of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		ctx := context.Background()

		run, err := db.GetRun(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}

		fmt.Printf("Run:       %s\n", run.ID)
		fmt.Printf("Service:   %s (%s)\n", run.ServiceName, run.Endpoint)
		fmt.Printf("Direction: %s→%s\n", run.SourceLang, run.TargetLang)
		fmt.Printf("Dataset:   %s\n", run.Dataset)
		fmt.Printf("Requests:  %d\n", run.RequestCount)
		fmt.Printf("Mean:      %.1f ms (min %.1f, max %.1f)\n\n", run.MeanMs, run.MinMs, run.MaxMs)

		measurements, err := db.GetMeasurements(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to load measurements: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tLATENCY MS\tTEXT")
		for _, m := range measurements {
			snippet := m.SourceText
			if len(snippet) > 60 {
				snippet = snippet[:57] + "..."
			}
			fmt.Fprintf(w, "%d\t%.1f\t%s\n", m.Seq, m.LatencyMs, snippet)
		}
		return w.Flush()
	},
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over all stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total runs:     %d\n", stats.TotalRuns)
		fmt.Printf("Total requests: %d\n", stats.TotalRequests)
		if stats.TotalRuns > 0 {
			fmt.Printf("Best mean:      %.1f ms\n", stats.BestMeanMs)
			fmt.Printf("Worst mean:     %.1f ms\n", stats.WorstMeanMs)
		}
		return nil
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored run by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.DeleteRun(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		fmt.Printf("Deleted run: %s\n", args[0])
		return nil
	},
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		n, err := db.ClearRuns(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear runs: %w", err)
		}
		fmt.Printf("Cleared %d runs from history.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	runsCmd.AddCommand(runsClearCmd)
}
