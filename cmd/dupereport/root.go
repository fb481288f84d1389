/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carverauto/dupereport/pkg/config"
	"github.com/carverauto/dupereport/pkg/dedupe"
	"github.com/carverauto/dupereport/pkg/logger"
	"github.com/carverauto/dupereport/pkg/report"
	"github.com/carverauto/dupereport/pkg/watchman"
)

const version = "1.0.0"

type options struct {
	verbose     bool
	subdomain   string
	apiKey      string
	envFile     string
	resetEnv    bool
	exportCSV   bool
	csvFilename string
	noEmail     bool
	emailOnly   bool
}

// NewRootCmd creates the root command for dupereport.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dupereport",
		Short: "Report duplicate devices in Watchman Monitoring",
		Long: `dupereport fetches the computer inventory from a Watchman Monitoring
tenant, groups devices sharing a System MAC Address, and reports which
duplicate should be kept (most recent report date) and which should be
removed manually through the web interface.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringVar(&opts.subdomain, "subdomain", "", "Watchman subdomain (overrides .env)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Watchman API key (overrides .env)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path to the credentials file")
	cmd.Flags().BoolVar(&opts.resetEnv, "reset-env", false, "Recreate the credentials file")
	cmd.Flags().BoolVar(&opts.exportCSV, "export-csv", false, "Export the report to a CSV file")
	cmd.Flags().StringVar(&opts.csvFilename, "csv-filename", "watchman_duplicates_report.csv", "CSV output filename")
	cmd.Flags().BoolVar(&opts.noEmail, "no-email", false, "Disable email sending")
	cmd.Flags().BoolVar(&opts.emailOnly, "email-only", false, "Send email only, suppress console output")

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	logCfg := logger.DefaultConfig()
	logCfg.Debug = opts.verbose

	if opts.emailOnly {
		logCfg.Level = "error"
		logCfg.Debug = false
	}

	log, err := logger.NewComponent("dupereport", logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	runID := uuid.New().String()

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID).
		Str("subdomain", cfg.Subdomain).
		Msg("Starting duplicate device report")

	client, err := watchman.NewClient(watchman.Config{
		Subdomain: cfg.Subdomain,
		APIKey:    cfg.APIKey,
	}, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	computers, err := client.Computers(ctx)
	if err != nil {
		return fmt.Errorf("fetch computers: %w", err)
	}

	detector := dedupe.NewDetector(log)
	resolutions := detector.Run(computers)
	rep := report.Assemble(resolutions, len(computers), cfg.Subdomain)

	log.Info().
		Str("run_id", runID).
		Int("computers", rep.TotalAnalyzed).
		Int("duplicate_groups", rep.TotalGroups).
		Int("to_remove", len(rep.Remove)).
		Msg("Duplicate analysis complete")

	var csvPath string

	if opts.exportCSV && rep.HasDuplicates() {
		if err := report.ExportCSV(opts.csvFilename, rep); err != nil {
			return err
		}

		csvPath = opts.csvFilename

		log.Info().Str("file", csvPath).Msg("Report exported to CSV")
	}

	// Nothing to act on means nothing to mail.
	if rep.HasDuplicates() && !opts.noEmail && cfg.EmailConfigured() {
		mailer := report.NewMailer(cfg.SMTP, log)
		if err := mailer.Send(ctx, rep, csvPath); err != nil {
			return err
		}
	}

	if !opts.emailOnly {
		report.WriteSummary(cmd.OutOrStdout(), rep)
	}

	return nil
}

// resolveConfig merges flag credentials over the .env file, running the
// interactive setup when no credentials exist yet.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if opts.subdomain != "" && opts.apiKey != "" {
		return &config.Config{Subdomain: opts.subdomain, APIKey: opts.apiKey}, nil
	}

	if opts.resetEnv {
		if err := os.Remove(opts.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove env file %s: %w", opts.envFile, err)
		}
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}

	if opts.subdomain != "" {
		cfg.Subdomain = opts.subdomain
	}

	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}

	if cfg.Validate() != nil {
		if opts.emailOnly {
			// No prompting in unattended mode.
			return nil, cfg.Validate()
		}

		return config.Setup(opts.envFile, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return cfg, nil
}
