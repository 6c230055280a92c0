package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck - project boards in your terminal",
	Long: `TaskDeck is a terminal project-management dashboard: kanban boards,
team membership, resource links, a calendar view and a per-session
discussion panel, all synced to a taskdeck server.

Run 'taskdeck' without arguments to open the interactive board.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("server") {
			cfg.ServerURL = serverURL
			configChanged = true
		}
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("taskdeck started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: runBoard,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("taskdeck exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !ses.auth.Authenticated() {
		return fmt.Errorf("not logged in, run 'taskdeck auth login' first")
	}
	if err := ses.projects.FetchAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	ses.restoreCurrent()

	logger.Info("launching board")
	m := tui.NewModel(ses.projects, ses.chat, ses.auth.User(), ses.cfg.Theme)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("board error", logger.F("error", err))
		return fmt.Errorf("failed to run board: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend server URL")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(resourceCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(themeCmd)
}
