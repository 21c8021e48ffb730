package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"retroquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "rq",
	Short:         "RetroQuest — gamify your real-world tasks",
	Long:          "RetroQuest is a local-first progression loop: turn tasks into quests worth XP and coins, level up, and spend coins on real-world rewards in your shop.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.retroquest.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (default ~/.retroquest.db)")

	rootCmd.AddCommand(
		newAddCmd(),
		newLogCmd(),
		newDoneCmd(),
		newArchiveCmd(),
		newReviveCmd(),
		newRemoveCmd(),
		newTimerCmd(),
		newShopCmd(),
		newHistoryCmd(),
		newStatusCmd(),
		newSuggestCmd(),
		newBoardCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
