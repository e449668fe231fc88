package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/ui"
)

var enumsCmd = &cobra.Command{
	Use:   "enums",
	Short: "Rebuild or print the id and tag enums",
}

var rebuildEnumsCmd = &cobra.Command{
	Use:   "rebuild [assets|networks|protocols]...",
	Short: "Rebuild the id enums from the records",
	Long: `Rewrites enums/ids/asset.json, network.json and protocol.json from the
records currently on disk, or only those of the given categories. An enum is
left untouched when any record of its category cannot be read or two records
share an id. The reference, explorer and tag enums are maintained by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRebuildEnums(cmd.Context(), Config, UI, Log, args)
	},
}

var showEnumCmd = &cobra.Command{
	Use:   "show <enum>",
	Short: "Print one enum as a table",
	Long: fmt.Sprintf(`Prints an enum file. <enum> is ids/<name>, tags/<name> or a bare name,
ids being tried first.

ids:  %s
tags: %s`, enumNames(models.EnumTypeIDs()), enumNames(models.EnumTypeTags())),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowEnum(Config, UI, args[0])
	},
}

func enumNames[T models.EnumType](types []T) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name())
	}
	return strings.Join(names, ", ")
}

func runRebuildEnums(ctx context.Context, cfg *config.Config, u ui.UI, log *zap.Logger, args []string) error {
	cats := make([]models.InfoCategory, 0, len(args))
	for _, arg := range args {
		cat, err := models.ParseInfoCategory(arg)
		if err != nil {
			return err
		}
		cats = append(cats, cat)
	}
	snap, err := loadSnapshot(ctx, cfg, u, log)
	if err != nil {
		return err
	}
	outcomes := enums.RebuildAll(snap, log, cats...)
	printEnumOutcomes(u, outcomes)
	if enums.Failed(outcomes) {
		return errFailed
	}
	return nil
}

func runShowEnum(cfg *config.Config, u ui.UI, name string) error {
	t, err := enums.ParseType(name)
	if err != nil {
		return err
	}
	list, err := enums.Read(cfg.Root, t)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{string(e.Value), e.Description.String()})
	}
	u.Info("%s/%s: %d entries", t.Family(), t.Name(), len(list))
	u.Table([]string{"value", "description"}, rows)
	return nil
}

func init() {
	enumsCmd.AddCommand(rebuildEnumsCmd)
	enumsCmd.AddCommand(showEnumCmd)
	rootCmd.AddCommand(enumsCmd)
}
