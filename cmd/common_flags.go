package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bifrost-platform/asset-info-v2/config"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"root":       "root",
	"workers":    "workers",
	"log-level":  "log_level",
	"log-json":   "log_json",
	"skip-rpc":   "skip_rpc",
	"skip-image": "skip_image",
	"overwrite":  "overwrite",
}

func addPersistentFlags(c *cobra.Command) {
	c.PersistentFlags().
		StringVarP(&config.RootDir, "root", "r", ".", "Repository root holding assets/, networks/, protocols/ and enums/")
	c.PersistentFlags().
		StringVarP(&config.ConfigFile, "config", "c", "", "Config file. Defaults to <root>/"+config.FileName+" when it exists")
	c.PersistentFlags().
		IntVarP(&config.Workers, "workers", "w", 0, "Number of records processed concurrently. Defaults to the number of CPUs")
	c.PersistentFlags().
		StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	c.PersistentFlags().
		BoolVar(&config.LogJSON, "log-json", false, "Write logs as JSON lines")
}

func addSkipFlags(c *cobra.Command) {
	c.Flags().
		BoolVar(&config.SkipRPC, "skip-rpc", false, "Skip the checks that call RPC nodes")
	c.Flags().
		BoolVar(&config.SkipImage, "skip-image", false, "Skip the image checks")
}

func addOverwriteFlag(c *cobra.Command) {
	c.Flags().
		BoolVar(&config.Overwrite, "overwrite", false, "Rewrite ladder images that already exist")
}

// flagOverrides returns the config values of the flags set on the command
// line. Flags left at their default do not override the config file or the
// environment.
func flagOverrides(c *cobra.Command) map[string]any {
	values := map[string]any{
		"root":       config.RootDir,
		"workers":    config.Workers,
		"log-level":  config.LogLevel,
		"log-json":   config.LogJSON,
		"skip-rpc":   config.SkipRPC,
		"skip-image": config.SkipImage,
		"overwrite":  config.Overwrite,
	}
	out := map[string]any{}
	for name, key := range flagKeys {
		f := c.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		out[key] = values[name]
	}
	return out
}
