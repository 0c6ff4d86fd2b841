package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/cmd/tui/ui"
	"github.com/VoxDroid/dtf/internal/check"
	"github.com/VoxDroid/dtf/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/dtf/internal/tui/model"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [<fileA> <fileB>]",
	Short: "Browse differences in an interactive terminal UI",
	Long: `Browse the differences of two files, a saved result or a recorded check.

Examples:
  dtf tui a.json b.json
  dtf tui --saved result.json
  dtf tui --history 3f2a`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, cleanup, err := tuiSource(cmd, args)
		if err != nil {
			return err
		}
		defer cleanup()

		uiModel := modelpkg.New(src)
		if err := uiModel.Load(cmd.Context()); err != nil {
			return err
		}
		_, err = ui.NewProgram(uiModel).Run()
		return err
	},
}

// tuiSource picks where the browsed result comes from. The returned func
// releases resources held by the source.
func tuiSource(cmd *cobra.Command, args []string) (adapters.Source, func(), error) {
	saved, _ := cmd.Flags().GetString("saved")
	id, _ := cmd.Flags().GetString("history")
	given := 0
	for _, set := range []bool{len(args) > 0, saved != "", id != ""} {
		if set {
			given++
		}
	}
	if given != 1 {
		return nil, nil, errors.New("give two files, --saved <file> or --history <id>")
	}
	k, t, v, a := categoryFlags(cmd)
	render := check.WithRender(k, t, v, a)
	switch {
	case saved != "":
		return adapters.NewSavedSource(saved, render), func() {}, nil
	case id != "":
		r, closeDB, err := openHistory()
		if err != nil {
			return nil, nil, err
		}
		return adapters.NewHistorySource(r, id, render), closeDB, nil
	}
	if len(args) != 2 {
		return nil, nil, errors.New("expected two files to compare")
	}
	if !k && !t && !v && !a {
		k, t, v, a = true, true, true, true
	}
	cfg := check.NewConfig(
		check.WithChecks(k, t, v, a),
		check.WithFiles(args[0], args[1]),
		check.WithArraySameOrder(arraySameOrder(cmd)),
	)
	return adapters.NewFileSource(cfg), func() {}, nil
}

func init() {
	tuiCmd.Flags().String("saved", "", "Browse a saved result written with --write-to-file")
	tuiCmd.Flags().String("history", "", "Browse a recorded check by id or id prefix")
	tuiCmd.Flags().BoolP("key-diffs", "k", false, "Check for key differences")
	tuiCmd.Flags().BoolP("type-diffs", "t", false, "Check for type differences")
	tuiCmd.Flags().BoolP("value-diffs", "v", false, "Check for value differences")
	tuiCmd.Flags().BoolP("array-diffs", "a", false, "Check for array differences")
	tuiCmd.Flags().BoolP("array-same-order", "o", false, "Compare arrays index by index")
	rootCmd.AddCommand(tuiCmd)
}
