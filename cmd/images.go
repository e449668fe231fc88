package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/imaging"
	"github.com/bifrost-platform/asset-info-v2/ui"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Work on the images of a single record",
}

var deriveImagesCmd = &cobra.Command{
	Use:   "derive <record dir>",
	Short: "Derive the image ladder of one record directory",
	Long: `Derives the missing ladder images of one record directory and prints what
was created and which flags info.json should carry. info.json itself is not
modified; run preprocess for that.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeriveImages(Config, UI, args[0])
	},
}

func runDeriveImages(cfg *config.Config, u ui.UI, dir string) error {
	res, err := imaging.Derive(dir, imaging.Options{Overwrite: cfg.Overwrite})
	if err != nil {
		u.Error("%s", err)
		return errFailed
	}
	if res.Source.Path == "" {
		u.Warn("%s has no source image", dir)
		return nil
	}
	size := "vector"
	if !res.Source.Svg {
		size = fmt.Sprintf("%dx%d", res.Source.Width, res.Source.Height)
	}
	u.KeyValue([][2]string{
		{"Source", res.Source.Name()},
		{"Format", res.Source.Format},
		{"Size", size},
		{"Created", imageTypeNames(res.Created)},
		{"Flags", imaging.Scan(dir).String()},
	})
	u.Success("%d image(s) created", len(res.Created))
	return nil
}

func init() {
	addOverwriteFlag(deriveImagesCmd)
	imagesCmd.AddCommand(deriveImagesCmd)
	rootCmd.AddCommand(imagesCmd)
}
