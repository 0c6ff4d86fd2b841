package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/dtf/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or create settings.yaml",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := config.SettingsPath()
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", p, b)
		return nil
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write settings.yaml with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := config.SettingsPath()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(p); err == nil && !force {
			return fmt.Errorf("%s exists; use --force to overwrite", p)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.SaveSettings(config.DefaultSettings()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
		return nil
	},
}

func init() {
	settingsInitCmd.Flags().Bool("force", false, "Overwrite an existing settings.yaml")
	settingsCmd.AddCommand(settingsShowCmd, settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}
