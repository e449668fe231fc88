// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/networks"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/util/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asset-info",
	Short: "Validate and preprocess the asset-info metadata repository",
	Long: fmt.Sprintf(`asset-info keeps the blockchain metadata repository consistent.

The repository holds one directory per asset, network and protocol, each with
an info.json and optional images, plus the id and tag enums under enums/.

	1. validate checks every record against its schema, the enums, the other
	records, its images and, unless skipped, the token contracts on chain.

	2. preprocess derives the image ladder (image-32.png up to image-256.png)
	from each record's source image, writes the image flags into info.json and
	rebuilds the id enums.

Settings are read, lowest priority first, from built-in defaults,
<root>/%s (or --config), %s* environment variables and flags.

RPC nodes come from the rpc list (%s by default). The nodes of a single
network can be replaced with a comma separated list in an environment
variable, e.g. %s for evm-1.`,
		config.FileName,
		config.EnvPrefix,
		config.DefaultRPCFile,
		networks.GetNodeVariableName("evm-1"),
	),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Resolved once per invocation by setup.
var (
	Config *config.Config
	Log    *zap.Logger = zap.NewNop()
	UI     ui.UI       = ui.NewTerminalUI()
)

// errFailed makes the process exit non-zero after the command already
// reported why.
var errFailed = errors.New("failed")

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.ConfigFile, flagOverrides(cmd))
	if err != nil {
		return err
	}
	Config = cfg
	Log = logger.New(cfg.LogLevel, cfg.LogJSON)
	Log.Debug("config resolved",
		zap.String("root", cfg.Root),
		zap.Int("workers", cfg.Workers),
		zap.Bool("skip_rpc", cfg.SkipRPC),
		zap.Bool("skip_image", cfg.SkipImage))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = Log.Sync()
	if err != nil {
		if !errors.Is(err, errFailed) {
			UI.Critical("Error: %s", err)
		}
		os.Exit(1)
	}
}

func init() {
	addPersistentFlags(rootCmd)
}
