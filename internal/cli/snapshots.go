package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hightemp/isocountry/internal/config"
	"github.com/hightemp/isocountry/internal/snapshot"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshots,
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	mgr := snapshot.NewManager(cfg.CacheDir)
	dates, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(dates) == 0 {
		return withCode(ExitNoSnapshot, snapshot.ErrNoSnapshots)
	}

	latest := ""
	if dir, _, err := mgr.GetLatestSnapshot(); err == nil {
		latest = filepath.Base(dir)
	}

	out := cmd.OutOrStdout()
	for _, date := range dates {
		meta, err := snapshot.LoadMetadata(config.MetadataPath(mgr.GetSnapshotDir(date)))
		if err != nil {
			fmt.Fprintf(out, "  %s\t(no metadata)\n", date)
			continue
		}
		marker := " "
		if date == latest {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\t%d countries\t%s\t%s\n",
			marker, date, meta.CountriesCount, meta.CreatedAt.Format("2006-01-02 15:04:05"), meta.BuildID)
	}
	return nil
}
