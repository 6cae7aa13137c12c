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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/perevir/internal/dataset"
	"github.com/valpere/perevir/internal/translator"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Send the fixed smoke-test sentences and print raw responses",
	Long: `Send two hard-coded sentence lists through the translation server,
one sequential pass per direction, and print each raw response body.

This is the quick sanity check that the server answers at all; use
"perevir bench" for latency measurements.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		endpoint := viper.GetString("endpoint")
		svc := translator.NewLocalService(endpoint)
		cfg := translator.ServiceConfig{}

		for _, pass := range dataset.SmokePasses() {
			sentences, err := pass.Source.Sentences(ctx)
			if err != nil {
				return err
			}

			for _, text := range sentences {
				result, err := svc.Translate(ctx, cfg, translator.TranslateRequest{
					Text:       text,
					SourceLang: pass.SourceLang,
					TargetLang: pass.TargetLang,
				})
				if err != nil {
					return fmt.Errorf("translation failed for %q: %w", text, err)
				}
				fmt.Println(string(result.Raw))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(smokeCmd)
}
