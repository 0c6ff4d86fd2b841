package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/internal/db"
	"github.com/VoxDroid/dtf/internal/importer"
	"github.com/VoxDroid/dtf/internal/utils"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a history database or a saved result into the local history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// interactive mode when invoked without subcommands
		rdr := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		choice, err := utils.Prompt(rdr, out, "Select import type:\n  1) db\n  2) check\nEnter choice [1/2]: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			src, err := utils.Prompt(rdr, out, "Path to source DB file: ")
			if err != nil {
				return err
			}
			if src == "" {
				return fmt.Errorf("source path cannot be empty")
			}
			mode, err := utils.Prompt(rdr, out, "Merge into the current history or replace it? (merge|replace) [merge]: ")
			if err != nil {
				return err
			}
			switch strings.ToLower(mode) {
			case "", "merge":
				return importDB(cmd, src, false, true)
			case "replace":
				return importDB(cmd, src, true, false)
			}
			return fmt.Errorf("invalid mode: %s", mode)
		case "2":
			src, err := utils.Prompt(rdr, out, "Path to saved result: ")
			if err != nil {
				return err
			}
			if src == "" {
				return fmt.Errorf("source path cannot be empty")
			}
			label, err := utils.Prompt(rdr, out, "Label (optional): ")
			if err != nil {
				return err
			}
			return importCheck(cmd, src, label)
		default:
			return fmt.Errorf("invalid choice: %s", choice)
		}
	},
}

var importDbCmd = &cobra.Command{
	Use:   "db <file> [--merge | --overwrite]",
	Short: "Import a history database file",
	Long: "Without flags the file becomes the history database when none exists yet.\n" +
		"--merge copies its checks into the current history, skipping ones already present.\n" +
		"--overwrite replaces the current history (dangerous).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		merge, _ := cmd.Flags().GetBool("merge")
		if overwrite && merge {
			return fmt.Errorf("--merge and --overwrite cannot be combined")
		}
		return importDB(cmd, args[0], overwrite, merge)
	},
}

var importCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Record a saved-result JSON file in the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		return importCheck(cmd, args[0], label)
	},
}

func importDB(cmd *cobra.Command, src string, overwrite, merge bool) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("source DB not found: %w", err)
	}
	if !merge {
		if err := importer.ImportDatabase(src, overwrite); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported database from %s\n", src)
		return nil
	}
	dbConn, err := db.InitDB()
	if err != nil {
		return err
	}
	defer func() { _ = dbConn.Close() }()
	n, err := importer.MergeDatabase(src, dbConn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "merged %d check(s) from %s\n", n, src)
	return nil
}

func importCheck(cmd *cobra.Command, src, label string) error {
	r, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()
	c, err := importer.ImportCheck(r, src, label)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported check %s from %s\n", c.ShortID(), src)
	return nil
}

func init() {
	importDbCmd.Flags().Bool("overwrite", false, "Replace the active history database if it exists")
	importDbCmd.Flags().Bool("merge", false, "Copy the checks into the active history instead of replacing it")
	importCheckCmd.Flags().String("label", "", "Label the imported check")
	importCmd.AddCommand(importDbCmd, importCheckCmd)
	rootCmd.AddCommand(importCmd)
}
