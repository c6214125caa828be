// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/charm"
	"github.com/harperreed/anamnesis/internal/config"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync assessments across devices",
	Long: `Sync assessments across devices using Charm Cloud.

Only applies to the charm backend. Your data is E2E encrypted with your
SSH key before upload. The server never sees your unencrypted answers.

GETTING STARTED:

  1. Switch to the charm backend:
     anamnesis config set backend charm

  2. Link your device (creates/uses SSH key automatically):
     anamnesis sync link

  3. Check sync status:
     anamnesis sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each save or delete.`,
	Annotations: map[string]string{noStorage: "true"},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		fmt.Fprintln(out, color.GreenString("\n✓ Device linked to Charm"))

		client, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Could not open the assessment store: %v", err))
			return nil
		}
		defer func() { _ = client.Close() }()

		if err := client.Sync(); err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Initial sync failed: %v", err))
		} else {
			fmt.Fprintln(out, color.GreenString("✓ Initial sync complete"))
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local assessments.
You can link again later with 'anamnesis sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Device unlinked from Charm"))
		fmt.Fprintln(out, "Your local assessments are preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long: `Show current sync status including:
- Charm account info
- Connection status
- Local assessment count`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cfg.GetBackend() != config.BackendCharm {
			fmt.Fprintln(out, color.YellowString("Sync is off: the %s backend is local only", cfg.GetBackend()))
			fmt.Fprintln(out, "\nRun 'anamnesis config set backend charm' to enable it.")
			return nil
		}

		client, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Charm client not initialized: %v", err))
			fmt.Fprintln(out, "\nRun 'anamnesis sync link' to connect to Charm.")
			return nil
		}
		defer func() { _ = client.Close() }()

		id, err := client.ID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "\nRun 'anamnesis sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", charmServer())
		fmt.Fprintln(out)

		list, _ := client.ListAssessments(nil, 0)
		fmt.Fprintln(out, color.GreenString("✓ Connected to Charm"))
		fmt.Fprintf(out, "  Assessments: %d\n", len(list))
		if client.IsReadOnly() {
			fmt.Fprintln(out, color.YellowString("  Read-only: another process holds the database lock"))
		}
		return nil
	},
}

func charmServer() string {
	if host := os.Getenv("CHARM_HOST"); host != "" {
		return host
	}
	return charm.DefaultHost
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local data.

This is a DESTRUCTIVE operation. ALL assessments will be permanently deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and local assessments.")
		if readConfirm(cmd.InOrStdin(), out, "Type 'wipe' to confirm: ") != "wipe" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Data wiped successfully"))
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		force, _ := cmd.Flags().GetBool("force")

		fmt.Fprintln(out, "Repairing anamnesis database...")
		result, err := kv.Repair(charm.DBName, force)

		if result.WalCheckpointed {
			fmt.Fprintln(out, color.GreenString("  ✓ WAL checkpointed"))
		}
		if result.ShmRemoved {
			fmt.Fprintln(out, color.GreenString("  ✓ SHM file removed"))
		}
		if result.IntegrityOK {
			fmt.Fprintln(out, color.GreenString("  ✓ Integrity check passed"))
		} else {
			fmt.Fprintln(out, color.RedString("  ✗ Integrity check failed"))
		}
		if result.Vacuumed {
			fmt.Fprintln(out, color.GreenString("  ✓ Database vacuumed"))
		}

		if err != nil {
			if !force {
				fmt.Fprintln(out, color.YellowString("\nRun with --force to attempt recovery."))
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("\n✓ Repair complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.
Use this to:
- Fix sync conflicts
- Reset a device to cloud state`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE all local assessments and restore from cloud.")
		if !isYes(readConfirm(cmd.InOrStdin(), out, "Continue? [y/N]: ")) {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Local data reset and restored from cloud"))
		return nil
	},
}

// readConfirm prints prompt and returns the trimmed answer, or "" when input ends.
func readConfirm(in io.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
