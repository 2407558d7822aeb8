package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watson-tui/watson-tui/internal/config"
	"github.com/watson-tui/watson-tui/internal/tui"
	"github.com/watson-tui/watson-tui/internal/watson"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watson-tui",
	Short: "A terminal front-end for the watson time tracker",
	Long: `watson-tui is a terminal UI for the watson time-tracking CLI.
Start and stop sessions, tag them, and browse the log or CSV report.
All tracked time lives in watson; this program only drives it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.watson-tui/config.yaml)")
	rootCmd.PersistentFlags().String("watson-bin", "", "watson executable to invoke (overrides config and WATSON_TUI_WATSON_BIN)")
	rootCmd.PersistentFlags().String("start-at", "", "default start-at mode: now or last-stop")

	viper.BindPFlag("watson_bin", rootCmd.PersistentFlags().Lookup("watson-bin"))
	viper.BindPFlag("start_at", rootCmd.PersistentFlags().Lookup("start-at"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
}

func runTUI() error {
	cfg := config.FromViper()
	client := watson.NewClient(cfg.WatsonBin)

	m, err := tui.NewRootModel(cfg, client)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
