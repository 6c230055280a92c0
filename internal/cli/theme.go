package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/config"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the board theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Printf("Theme: %s\n", cfg.Theme)
			return nil
		}

		switch args[0] {
		case config.ThemeDark, config.ThemeLight:
			cfg.Theme = args[0]
		default:
			return fmt.Errorf("unknown theme %q (want dark or light)", args[0])
		}

		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s\n", cfg.Theme)
		return nil
	},
}
