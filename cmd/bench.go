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
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/perevir/internal"
	"github.com/valpere/perevir/internal/dataset"
	"github.com/valpere/perevir/internal/detector"
	"github.com/valpere/perevir/internal/harness"
	"github.com/valpere/perevir/internal/store"
	"github.com/valpere/perevir/internal/translator"
)

var (
	benchInputFile  string
	benchDatasetURL string
	benchColumn     string
	benchSourceLang string
	benchTargetLang string

	benchService     string
	benchCredentials string
	benchProjectID   string

	benchNoStore bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure per-request translation latency over a sentence dataset",
	Long: `Drive a dataset of sentences through the translation server, one
request at a time, and report the mean round-trip latency.

Requests are strictly sequential: each response is fully received before
the next sentence is sent, so the timings measure service latency rather
than queuing. Every request prints its own elapsed time and response as
the run progresses; the run aborts on the first failed request.

Sentences come from a local CSV file (-i) or are fetched from a dataset
URL (default: the speech-uk text-to-speech sentence set on Hugging Face).

Example:
  perevir bench -s uk -t en
  perevir bench -i sentences.csv --column sentence -s uk -t en
  perevir bench --service google -s uk -t en`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var src dataset.Source
		var datasetLabel string
		if benchInputFile != "" {
			src = dataset.NewCSVSource(benchInputFile, benchColumn)
			datasetLabel = benchInputFile
		} else {
			remote := dataset.NewRemoteCSVSource(benchDatasetURL, benchColumn)
			src = remote
			datasetLabel = remote.URL
			fmt.Fprintf(os.Stderr, "Fetching dataset: %s\n", remote.URL)
		}

		sentences, err := src.Sentences(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Loaded %d sentences\n", len(sentences))

		srcLang := benchSourceLang
		if srcLang == "auto" && len(sentences) > 0 {
			det := detector.New()
			if detected, ok := det.DetectISO(sentences[0]); ok {
				srcLang = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", srcLang)
			}
		} else if len(sentences) > 0 {
			det := detector.New()
			if !det.Matches(sentences[0], srcLang) {
				fmt.Fprintf(os.Stderr, "Warning: first sentence does not look like %q\n", srcLang)
			}
		}

		endpoint := viper.GetString("endpoint")
		svc, err := buildService(benchService, endpoint)
		if err != nil {
			return err
		}

		cfg := translator.ServiceConfig{
			Endpoint:    endpoint,
			Credentials: benchCredentials,
			ProjectID:   benchProjectID,
		}

		var records []internal.MeasurementRecord
		runID := uuid.New().String()

		observer := func(i int, text string, m harness.Measurement) {
			payload := m.Response.Raw
			if len(payload) == 0 {
				payload = []byte(m.Response.TranslatedText)
			}
			fmt.Printf("%.6f %s\n", m.Elapsed.Seconds(), payload)

			records = append(records, internal.MeasurementRecord{
				RunID:          runID,
				Seq:            i,
				SourceText:     text,
				TranslatedText: m.Response.TranslatedText,
				LatencyMs:      float64(m.Elapsed) / float64(time.Millisecond),
			})
		}

		runner := harness.New(svc, cfg, observer)
		dir := harness.Direction{SourceLang: srcLang, TargetLang: benchTargetLang}

		summary, err := runner.Run(ctx, sentences, dir)
		if err != nil {
			return err
		}

		fmt.Printf("Requests: %d\n", summary.Count)
		if summary.Count > 0 {
			fmt.Printf("Average:  %.6f sec\n", summary.Mean.Seconds())
			fmt.Printf("Fastest:  %.6f sec\n", summary.Min.Seconds())
			fmt.Printf("Slowest:  %.6f sec\n", summary.Max.Seconds())
		}

		if !benchNoStore && summary.Count > 0 {
			dbPath := viper.GetString("db")
			db, err := store.New(dbPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open database: %v\n", err)
				return nil
			}
			defer db.Close()

			run := internal.RunRecord{
				ID:           runID,
				ServiceName:  svc.Name(),
				Endpoint:     endpoint,
				SourceLang:   srcLang,
				TargetLang:   benchTargetLang,
				Dataset:      datasetLabel,
				RequestCount: summary.Count,
				TotalMs:      float64(summary.Total) / float64(time.Millisecond),
				MeanMs:       float64(summary.Mean) / float64(time.Millisecond),
				MinMs:        float64(summary.Min) / float64(time.Millisecond),
				MaxMs:        float64(summary.Max) / float64(time.Millisecond),
				CreatedAt:    time.Now(),
			}
			if err := db.SaveRun(ctx, run); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save run: %v\n", err)
				return nil
			}
			if err := db.SaveMeasurements(ctx, records); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save measurements: %v\n", err)
				return nil
			}
			fmt.Fprintf(os.Stderr, "Saved run %s\n", runID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchInputFile, "input", "i", "", "Local CSV file with sentences (default: fetch dataset URL)")
	benchCmd.Flags().StringVar(&benchDatasetURL, "dataset-url", dataset.DefaultDatasetURL, "Dataset CSV URL")
	benchCmd.Flags().StringVar(&benchColumn, "column", dataset.DefaultColumn, "CSV column holding the sentence text")
	benchCmd.Flags().StringVarP(&benchSourceLang, "source", "s", "uk", "Source language code (or 'auto' to detect)")
	benchCmd.Flags().StringVarP(&benchTargetLang, "target", "t", "en", "Target language code")

	benchCmd.Flags().StringVar(&benchService, "service", "local", "Translation service to exercise (local, google)")
	benchCmd.Flags().StringVarP(&benchCredentials, "credentials", "c", "", "Path to Google Cloud credentials (service google)")
	benchCmd.Flags().StringVarP(&benchProjectID, "project", "p", "", "Google Cloud project ID (service google)")

	benchCmd.Flags().BoolVar(&benchNoStore, "no-store", false, "Do not persist the run to the history database")
}
