package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every record, enum and image of the repository",
	Long: `Loads every info.json, then checks the enum closures, the references
between records, network currencies, image flags against the files on disk
and, unless --skip-rpc is given, token metadata against the contracts on
chain. Networks without an rpc endpoint are reported as skipped.

With --json - the report is printed as JSON instead of the usual listing.

Exits with status 1 when any violation is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), Config, UI, Log, config.JSONOutputFile, nil)
	},
}

func runValidate(ctx context.Context, cfg *config.Config, u ui.UI, log *zap.Logger, jsonPath string, newReader validation.ReaderFactory) error {
	snap, err := loadSnapshot(ctx, cfg, u, log)
	if err != nil {
		return err
	}

	opts := validation.Options{Workers: cfg.Workers, SkipImage: cfg.SkipImage, Log: log}
	if !cfg.SkipRPC {
		opts.OnChain, err = newOnChain(cfg, newReader)
		if err != nil {
			return err
		}
	}

	stop := u.Spinner("Validating...")
	report, err := validation.Run(ctx, snap, opts)
	stop()
	if err != nil {
		return err
	}

	switch jsonPath {
	case "":
		printReport(u, report)
	case "-":
		if err := report.WriteJSON(u.Writer()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	default:
		if err := writeJSONReport(jsonPath, report); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", jsonPath))
		printReport(u, report)
	}
	if report.HasFailures() {
		return errFailed
	}
	return nil
}

func init() {
	addSkipFlags(validateCmd)
	validateCmd.Flags().StringVar(&config.JSONOutputFile, "json", "", "Also write the report as JSON to this file, or only to stdout with -")
	rootCmd.AddCommand(validateCmd)
}
