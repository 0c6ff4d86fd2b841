package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/internal/exporter"
	"github.com/VoxDroid/dtf/internal/utils"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history database or a recorded check to portable files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// interactive mode when invoked without subcommands
		rdr := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		choice, err := utils.Prompt(rdr, out, "Select export type:\n  1) db\n  2) check\nEnter choice [1/2]: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			dst, err := utils.Prompt(rdr, out, "Destination path (leave empty for default): ")
			if err != nil {
				return err
			}
			return exportDB(cmd, dst)
		case "2":
			id, err := utils.Prompt(rdr, out, "Id of check to export: ")
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("check id cannot be empty")
			}
			dst, err := utils.Prompt(rdr, out, "Destination path (leave empty for default): ")
			if err != nil {
				return err
			}
			return exportCheck(cmd, id, dst)
		default:
			return fmt.Errorf("invalid choice: %s", choice)
		}
	},
}

var exportDbCmd = &cobra.Command{
	Use:   "db [--dst <path>]",
	Short: "Export the history database to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dst, _ := cmd.Flags().GetString("dst")
		return exportDB(cmd, dst)
	},
}

var exportCheckCmd = &cobra.Command{
	Use:   "check <id> [--dst <path>]",
	Short: "Export a recorded check as a saved-result JSON file",
	Long:  "Export a recorded check in the format written by --write-to-file, so it can be re-rendered with -r.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, _ := cmd.Flags().GetString("dst")
		return exportCheck(cmd, args[0], dst)
	},
}

func exportDB(cmd *cobra.Command, dst string) error {
	// default destination: ./dtf-YYYY-MM-DD.db, suffixed to avoid overwriting
	if dst == "" {
		date := time.Now().UTC().Format("2006-01-02")
		dst = uniqueDestPath(filepath.Join(".", fmt.Sprintf("dtf-%s.db", date)))
	}
	// make sure the database exists before copying it
	_, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	closeDB()
	if err := exporter.ExportDatabase(dst); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported database to %s\n", dst)
	return nil
}

func exportCheck(cmd *cobra.Command, id, dst string) error {
	r, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()
	c, err := resolveCheck(r, id)
	if err != nil {
		return err
	}
	if dst == "" {
		dst = uniqueDestPath(filepath.Join(".", fmt.Sprintf("dtf-%s.json", c.ShortID())))
	}
	if err := exporter.ExportCheck(r, c.ID, dst); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported check %s to %s\n", c.ShortID(), dst)
	return nil
}

// uniqueDestPath returns base, or base with a numeric suffix before the
// extension when base already exists (e.g. name-1.db).
func uniqueDestPath(base string) string {
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return base
	}
	ext := filepath.Ext(base)
	root := base[:len(base)-len(ext)]
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s-%d%s", root, i, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func init() {
	exportDbCmd.Flags().String("dst", "", "Destination file path (default ./dtf-YYYY-MM-DD.db)")
	exportCheckCmd.Flags().String("dst", "", "Destination file path (default ./dtf-<id>.json)")
	exportCmd.AddCommand(exportDbCmd, exportCheckCmd)
	rootCmd.AddCommand(exportCmd)
}
