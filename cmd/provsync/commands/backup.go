package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpratt/provsync/internal/backup"
)

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage store snapshots",
	Long: `Manage the timestamped snapshots of the provider store.

A snapshot is taken automatically before every store write; retention
is bounded (oldest pruned first). This command group lists snapshots
and creates manual ones.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List store snapshots, newest first",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runBackupList(os.Stdout)
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual store snapshot",
	Long: `Create a snapshot of the provider store outside the automatic
pre-write cycle, for example before hand-editing the store document.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runBackupCreate(os.Stdout)
	},
}

func backupManager() *backup.Manager {
	cfg := loadedConfig()
	resolver := cfg.Resolver()
	return backup.NewManager(
		backup.WithDir(resolver.BackupDir()),
		backup.WithRetentionCount(cfg.Retention()),
	)
}

func runBackupList(w io.Writer) error {
	snapshots, err := backupManager().List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE")
	for _, snap := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%d B\n",
			snap.ID, snap.ModTime.Format("2006-01-02 15:04:05"), snap.Size)
	}
	return tw.Flush()
}

func runBackupCreate(w io.Writer) error {
	resolver := loadedConfig().Resolver()

	id, err := backupManager().Backup(resolver.StorePath())
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(w, "No store document yet; nothing to snapshot.")
		return nil
	}

	fmt.Fprintf(w, "%s✓%s Snapshot %s%s%s created\n",
		colorGreen, colorReset, colorBold, id, colorReset)
	return nil
}
