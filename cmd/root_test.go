package cmd

import "testing"

func TestFirstNonFlagArg(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"command after flag", []string{"--hover", "rooster"}, "rooster"},
		{"only flags", []string{"--no-mouse", "-h"}, ""},
		{"subcommand path", []string{"roster", "list"}, "roster"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonFlagArg(tt.args); got != tt.want {
				t.Errorf("firstNonFlagArg(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestSetupLoggingFromEnv(t *testing.T) {
	path := t.TempDir() + "/teamdeck.log"
	t.Setenv("TEAMDECK_LOG", path)
	orig := logger
	t.Cleanup(func() {
		closeLogging()
		logger = orig
	})

	if err := setupLogging(""); err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if logFile == nil || logFile.Name() != path {
		t.Fatalf("log file = %v, want %s", logFile, path)
	}
}

func TestSetupLoggingBadPath(t *testing.T) {
	t.Setenv("TEAMDECK_LOG", "")
	if err := setupLogging(t.TempDir() + "/missing/dir/x.log"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
