package cmd

import (
	"bufio"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/db"
	"github.com/VoxDroid/dtf/internal/history"
	"github.com/VoxDroid/dtf/internal/render"
	"github.com/VoxDroid/dtf/internal/utils"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse checks recorded in the local history",
	Long:  "Every fresh check is recorded in the local history unless --no-history is given or history is disabled in settings.yaml.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded checks, newest first",
	Long:  "List recorded checks. Example:\n  dtf history list --filter prod --limit 10",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		limit, _ := cmd.Flags().GetInt("limit")

		r, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()

		var checks []history.Check
		if filter != "" {
			checks, err = r.Search(filter, limit)
		} else {
			checks, err = r.List(limit)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(checks) == 0 {
			fmt.Fprintln(out, "no checks recorded")
			return nil
		}
		for _, c := range checks {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", c.ShortID(), humanize.Time(c.CreatedAt), describeCheck(c), english.Plural(c.Total(), "difference", ""))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render the tables of a recorded check",
	Long:  "Render a recorded check. The id may be shortened to any unique prefix.\nUse -k -t -v -a to limit the rendered categories.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()
		c, err := resolveCheck(r, args[0])
		if err != nil {
			return err
		}

		saved, err := c.Saved()
		if err != nil {
			return err
		}
		k, t, v, a := categoryFlags(cmd)
		wc := check.FromSaved(saved, check.NewConfig(check.WithRender(k, t, v, a)))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s  %s\n", c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04:05"), describeCheck(*c))
		return render.Write(out, saved.Collection(), wc, renderOptions(cmd))
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded check",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()
		c, err := resolveCheck(r, args[0])
		if err != nil {
			return err
		}

		if confirm, _ := cmd.Flags().GetBool("confirm"); !confirm {
			if !utils.Confirm(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), fmt.Sprintf("Delete check %s permanently?", c.ShortID())) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
		}
		if err := r.Delete(c.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted check %s\n", c.ShortID())
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			// a history_limit of 0 means unlimited
			if settings.HistoryLimit <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "history is unlimited; pass --keep to prune")
				return nil
			}
			keep = settings.HistoryLimit
		}
		if confirm, _ := cmd.Flags().GetBool("confirm"); !confirm {
			if !utils.Confirm(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), fmt.Sprintf("Keep only the newest %d checks?", keep)) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
		}
		r, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()
		n, err := r.Prune(keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %s\n", english.Plural(int(n), "check", ""))
		return nil
	},
}

// openHistory opens the history database. The returned func closes it.
func openHistory() (*history.Repository, func(), error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, nil, err
	}
	return history.NewRepository(dbConn), func() { _ = dbConn.Close() }, nil
}

// resolveCheck finds the check with the given id or unique id prefix.
func resolveCheck(r *history.Repository, id string) (*history.Check, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("no check matches %q", id)
	}
	return c, nil
}

func describeCheck(c history.Check) string {
	s := c.FileA + " ↔ " + c.FileB
	if c.Label.Valid {
		s = c.Label.String + ": " + s
	}
	return s
}

func addCategoryFlags(c *cobra.Command) {
	c.Flags().BoolP("key-diffs", "k", false, "Render key differences")
	c.Flags().BoolP("type-diffs", "t", false, "Render type differences")
	c.Flags().BoolP("value-diffs", "v", false, "Render value differences")
	c.Flags().BoolP("array-diffs", "a", false, "Render array differences")
}

func init() {
	historyListCmd.Flags().String("filter", "", "Fuzzy filter on label and file names")
	historyListCmd.Flags().Int("limit", 20, "Maximum number of checks to list (0 for all)")
	addCategoryFlags(historyShowCmd)
	historyDeleteCmd.Flags().Bool("confirm", false, "Delete without asking")
	historyPruneCmd.Flags().Int("keep", -1, "Number of newest checks to keep (default: history_limit from settings)")
	historyPruneCmd.Flags().Bool("confirm", false, "Prune without asking")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
