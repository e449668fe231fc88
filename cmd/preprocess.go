package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/preprocess"
	"github.com/bifrost-platform/asset-info-v2/ui"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Derive images, rewrite info.json files and rebuild the id enums",
	Long: `For every record, derives the missing rungs of the image ladder from its
source image (image.svg, or the largest of image.png, image.jpg, image.jpeg,
image.webp and the existing ladder files), sets the image flags in info.json
to match the files and rewrites info.json canonically. The id enums are
rebuilt once every record is done.

Existing ladder files are kept unless --overwrite is given. Exits with status
1 when any record fails; the other records are still processed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreprocess(cmd.Context(), Config, UI, Log)
	},
}

func runPreprocess(ctx context.Context, cfg *config.Config, u ui.UI, log *zap.Logger) error {
	snap, err := loadSnapshot(ctx, cfg, u, log)
	if err != nil {
		return err
	}
	stop := u.Spinner("Deriving images...")
	summary, err := preprocess.Run(ctx, snap, preprocess.Options{
		Workers:   cfg.Workers,
		Overwrite: cfg.Overwrite,
		Log:       log,
	})
	stop()
	if err != nil {
		return err
	}
	printPreprocess(u, summary)
	if summary.Failed() {
		return errFailed
	}
	return nil
}

func init() {
	addOverwriteFlag(preprocessCmd)
	rootCmd.AddCommand(preprocessCmd)
}
