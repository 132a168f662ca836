package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/marcus/teamdeck/internal/workdir"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
	logPath string
	logFile *os.File
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "teamdeck",
	Short: "Terminal team directory",
	Long: `teamdeck - A keyboard-first directory of the people on your team.

Run with no arguments to open the directory. Arrow keys move between
member cards, Enter opens one and Esc closes it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if strings.HasPrefix(err.Error(), "unknown command") {
			if name := firstNonFlagArg(os.Args[1:]); name != "" {
				fmt.Fprintf(os.Stderr, "See 'teamdeck --help' for commands; %q is not one.\n", name)
			}
		}
		closeLogging()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "write debug logs as JSON to this file (env TEAMDECK_LOG)")
}

func initBaseDir() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(cwd)
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// setupLogging points the package logger at path, or at $TEAMDECK_LOG when
// path is empty. Without either, logs are discarded since the TUI owns the
// terminal.
func setupLogging(path string) error {
	if path == "" {
		path = os.Getenv("TEAMDECK_LOG")
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	logger.Debug("start", "version", version, "base_dir", baseDir)
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// firstNonFlagArg returns the first argument that is not a flag, or "".
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
