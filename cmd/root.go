package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/config"
	"github.com/VoxDroid/dtf/internal/db"
	"github.com/VoxDroid/dtf/internal/history"
	"github.com/VoxDroid/dtf/internal/logging"
	"github.com/VoxDroid/dtf/internal/nameutil"
	"github.com/VoxDroid/dtf/internal/render"
	"github.com/VoxDroid/dtf/internal/security"
)

// ErrDifferencesFound is returned with --exit-code when a check found differences.
var ErrDifferencesFound = errors.New("differences found")

// settings holds the user defaults loaded before every command.
var settings = config.DefaultSettings()

var rootCmd = &cobra.Command{
	Use:   "dtf [flags] [<fileA> <fileB>]",
	Short: "Find the difference in your data structures",
	Long: `dtf compares two JSON documents and reports key, type, value and array differences.

Examples:
  dtf -k -v a.json b.json
  dtf -c a.json,b.json -a -o
  dtf -k -t -v -a a.json b.json -w result.json
  dtf -r result.json -v`,
	Args:              cobra.MaximumNArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runCheck,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrDifferencesFound) {
			rootCmd.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		s.LogLevel = lvl
	}
	if err := logging.Setup(cmd.ErrOrStderr(), s.LogLevel); err != nil {
		return err
	}
	settings = s
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	checkFiles, _ := flags.GetStringSlice("check-files")
	readFrom, _ := flags.GetString("read-from-file")
	writeTo, _ := flags.GetString("write-to-file")
	htmlOut, _ := flags.GetString("html")
	label, _ := flags.GetString("label")
	exitCode, _ := flags.GetBool("exit-code")

	if len(args) == 0 && len(checkFiles) == 0 && readFrom == "" {
		return cmd.Help()
	}
	files := args
	if len(checkFiles) > 0 {
		if len(args) > 0 {
			return errors.New("give the files either with --check-files or as arguments, not both")
		}
		files = checkFiles
	}
	if len(files) != 0 && len(files) != 2 {
		return fmt.Errorf("expected two files to compare, got %d", len(files))
	}
	if label != "" {
		label, _ = nameutil.SanitizeLabel(label)
		if err := nameutil.ValidateLabel(label); err != nil {
			return err
		}
	}

	k, t, v, a := categoryFlags(cmd)
	opts := []check.Option{
		check.WithChecks(k, t, v, a),
		check.WithOutputFile(writeTo),
		check.WithHTMLFile(htmlOut),
		check.WithArraySameOrder(arraySameOrder(cmd)),
		check.WithLabel(label),
	}
	if readFrom != "" {
		opts = append(opts, check.WithSavedResult(readFrom), check.WithRender(k, t, v, a))
	}
	if len(files) == 2 {
		opts = append(opts, check.WithFiles(files[0], files[1]))
	}

	cfg := check.NewConfig(opts...)
	for _, dst := range []string{cfg.WriteToFile, cfg.WriteToHTML} {
		if err := security.CheckOutputPath(dst, cfg.FileA, cfg.FileB, cfg.ReadFromFile); err != nil {
			return err
		}
	}
	wc, err := check.NewWorkingContext(cfg)
	if err != nil {
		return err
	}
	d, err := check.Run(cmd.Context(), wc)
	if err != nil {
		return err
	}
	if err := emit(cmd, d, wc); err != nil {
		return err
	}
	if !wc.Config.IsSavedRun() {
		recordHistory(cmd, d, wc)
	}
	if exitCode && d.HasDifferences() {
		return ErrDifferencesFound
	}
	return nil
}

func categoryFlags(cmd *cobra.Command) (keys, types, values, arrays bool) {
	keys, _ = cmd.Flags().GetBool("key-diffs")
	types, _ = cmd.Flags().GetBool("type-diffs")
	values, _ = cmd.Flags().GetBool("value-diffs")
	arrays, _ = cmd.Flags().GetBool("array-diffs")
	return keys, types, values, arrays
}

// arraySameOrder lets the flag override the settings default.
func arraySameOrder(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("array-same-order"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("array-same-order")
		return v
	}
	return settings.ArraySameOrder
}

// emit writes the result where the configuration asks for it: JSON and HTML
// files replace the tables.
func emit(cmd *cobra.Command, d check.DiffCollection, wc *check.WorkingContext) error {
	out := cmd.OutOrStdout()
	wrote := false
	if wc.Config.WriteToFile != "" {
		if err := check.WriteSaved(d, wc); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote result to %s\n", wc.Config.WriteToFile)
		wrote = true
	}
	if wc.Config.WriteToHTML != "" {
		if err := render.WriteHTMLFile(wc.Config.WriteToHTML, d, wc); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote report to %s\n", wc.Config.WriteToHTML)
		wrote = true
	}
	if wrote {
		return nil
	}
	return render.Write(out, d, wc, renderOptions(cmd))
}

// recordHistory stores a fresh check. History is best effort: failures are
// logged and never fail the check itself.
func recordHistory(cmd *cobra.Command, d check.DiffCollection, wc *check.WorkingContext) {
	if off, _ := cmd.Flags().GetBool("no-history"); off || !settings.HistoryEnabled() {
		return
	}
	dbConn, err := db.InitDB()
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer func() { _ = dbConn.Close() }()

	repo := history.NewRepository(dbConn)
	c, err := repo.Record(check.SavedFromCollection(d, wc.Config), wc.Config.Label)
	if err != nil {
		log.Warn().Err(err).Msg("could not record check")
		return
	}
	log.Debug().Str("id", c.ID).Int("differences", c.Total()).Msg("recorded check")
	if settings.HistoryLimit > 0 {
		if n, err := repo.Prune(settings.HistoryLimit); err != nil {
			log.Warn().Err(err).Msg("could not prune history")
		} else if n > 0 {
			log.Debug().Int64("pruned", n).Msg("pruned history")
		}
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringSliceP("check-files", "c", nil, "The two files to compare, comma separated (instead of positional arguments)")
	f.StringP("read-from-file", "r", "", "Read from a JSON file created on a previous check instead of checking again")
	f.StringP("write-to-file", "w", "", "Write the result to a JSON file instead of rendering tables")
	f.String("html", "", "Write an HTML report instead of rendering tables")
	f.BoolP("key-diffs", "k", false, "Check for key differences")
	f.BoolP("type-diffs", "t", false, "Check for type differences")
	f.BoolP("value-diffs", "v", false, "Check for value differences")
	f.BoolP("array-diffs", "a", false, "Check for array differences")
	f.BoolP("array-same-order", "o", false, "Compare arrays index by index: differences are reported as value differences with indexes instead of array differences")
	f.String("label", "", "Label the check in history")
	f.Bool("no-history", false, "Do not record this check in history")
	f.Bool("exit-code", false, "Exit with status 1 when differences are found")

	pf := rootCmd.PersistentFlags()
	pf.Bool("no-color", false, "Disable coloured output")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error (default from settings)")
}
