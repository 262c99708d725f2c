package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/output"
	"github.com/taskbot-dev/taskbot/internal/session"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|auto|toggle]",
	Short: "Show or change the color theme",
	Long: `Without arguments, prints the active theme. With an argument,
persists the preference: "auto" follows the terminal background,
"toggle" flips between light and dark.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		switch args[0] {
		case "light", "dark":
			cfg.Theme = args[0]
		case "auto":
			cfg.Theme = ""
		case "toggle":
			cfg.Theme = session.ResolveTheme(cfg.Theme).Opposite().Name
		default:
			return clierr.Newf(clierr.InvalidInput,
				"invalid theme %q (expected light, dark, auto, or toggle)", args[0])
		}
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	th := session.ResolveTheme(cfg.Theme)
	pref := cfg.Theme
	if pref == "" {
		pref = "auto"
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"preference": pref,
			"active":     th.Name,
			"dark":       th.IsDark,
		})
	}

	output.Messagef(os.Stdout, "Theme: %s (preference: %s)", th.Name, pref)
	return nil
}
