package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/VoxDroid/dtf/internal/config"
	"github.com/VoxDroid/dtf/internal/render"
)

// terminalFd returns the descriptor behind w when w is a terminal.
func terminalFd(w io.Writer) (uintptr, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := f.Fd()
	return fd, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// columnWidth caps the configured width so that a key column and two value
// columns fit the terminal.
func columnWidth(w io.Writer, configured int) int {
	if configured <= 0 {
		configured = config.DefaultMaxColumnWidth
	}
	fd, ok := terminalFd(w)
	if !ok {
		return configured
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return configured
	}
	// three columns, four borders and the cell padding
	fit := (width - 10) / 3
	if fit < 10 {
		fit = 10
	}
	return min(fit, configured)
}

func renderOptions(cmd *cobra.Command) render.Options {
	out := cmd.OutOrStdout()
	noColor, _ := cmd.Flags().GetBool("no-color")
	_, tty := terminalFd(out)
	return render.Options{
		MaxColumnWidth: columnWidth(out, settings.MaxColumnWidth),
		Color:          tty && !noColor && settings.ColorEnabled() && os.Getenv("NO_COLOR") == "",
	}
}
