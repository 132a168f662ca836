package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/internal/config"
	"github.com/marcus/teamdeck/internal/db"
	"github.com/marcus/teamdeck/internal/output"
	"github.com/marcus/teamdeck/pkg/monitor"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open the team directory",
	Long: `Open the interactive team directory.

Keys:
  ←/→ ↑/↓      move between member cards
  enter/space  open the focused card
  tab          move through links and buttons in an open card
  esc          close the card
  [ ]          switch tabs
  y            copy the member's email
  q            quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

func runShow(cmd *cobra.Command) error {
	baseDir := getBaseDir()

	cfg, err := config.Load(baseDir)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	if cmd.Flags().Changed("hover") {
		cfg.HoverMode, _ = cmd.Flags().GetBool("hover")
	}
	if cmd.Flags().Changed("no-mouse") {
		if off, _ := cmd.Flags().GetBool("no-mouse"); off {
			enabled := false
			cfg.Mouse = &enabled
		}
	}

	database, err := db.Open(baseDir)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.MouseEnabled() {
		// All-motion tracking is needed for hover without a pressed button.
		opts = append(opts, tea.WithMouseAllMotion())
	}

	model := monitor.NewModel(database, baseDir, cfg, logger)
	logger.Info("show: start", "hover", cfg.HoverMode, "mouse", cfg.MouseEnabled())
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run directory: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)

	for _, c := range []*cobra.Command{rootCmd, showCmd} {
		c.Flags().Bool("hover", false, "open cards when the pointer rests on them")
		c.Flags().Bool("no-mouse", false, "do not capture mouse input")
	}
}
