package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/teamdeck/internal/models"
)

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.HoverMode || cfg.HoverDelay() != 300*time.Millisecond {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".teamdeck"), 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}
		data := []byte(`{"hover_mode": true, "hover_delay_ms": 120, "glamour_style": "light"}`)
		if err := os.WriteFile(filepath.Join(dir, configFile), data, 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !cfg.HoverMode {
			t.Error("HoverMode: got false, want true")
		}
		if cfg.HoverDelayMS != 120 {
			t.Errorf("HoverDelayMS: got %d, want 120", cfg.HoverDelayMS)
		}
		if cfg.Style() != "light" {
			t.Errorf("Style: got %q, want light", cfg.Style())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		os.MkdirAll(filepath.Join(dir, ".teamdeck"), 0755)
		os.WriteFile(filepath.Join(dir, configFile), []byte("{not json"), 0644)

		if _, err := Load(dir); err == nil {
			t.Error("expected error for invalid json")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	on := true
	want := &models.Config{HoverMode: true, HoverDelayMS: 500, Mouse: &on, ActiveTab: "tab-about"}

	if err := Save(dir, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.HoverMode != want.HoverMode || got.HoverDelayMS != want.HoverDelayMS || got.ActiveTab != want.ActiveTab {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if got.Mouse == nil || !*got.Mouse {
		t.Error("Mouse: want explicit true")
	}
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"hover_mode", "true", "true"},
		{"hover_delay_ms", "450", "450"},
		{"mouse", "false", "false"},
		{"glamour_style", "notty", "notty"},
		{"active_tab", "tab-about", "tab-about"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			dir := t.TempDir()
			if err := Set(dir, tt.key, tt.value); err != nil {
				t.Fatalf("Set(%s, %s) failed: %v", tt.key, tt.value, err)
			}
			got, err := Get(dir, tt.key)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetDefaults(t *testing.T) {
	dir := t.TempDir()
	want := map[string]string{
		"hover_mode":     "false",
		"hover_delay_ms": "300",
		"mouse":          "true",
		"glamour_style":  "dark",
		"active_tab":     "",
	}
	for key, w := range want {
		got, err := Get(dir, key)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", key, err)
		}
		if got != w {
			t.Errorf("Get(%s) = %q, want %q", key, got, w)
		}
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	bad := [][2]string{
		{"hover_mode", "sometimes"},
		{"hover_delay_ms", "-5"},
		{"hover_delay_ms", "soon"},
		{"mouse", "maybe"},
	}
	for _, kv := range bad {
		if err := Set(dir, kv[0], kv[1]); err == nil {
			t.Errorf("Set(%s, %s) should fail", kv[0], kv[1])
		}
	}
	if _, err := os.Stat(filepath.Join(dir, configFile)); !os.IsNotExist(err) {
		t.Error("rejected values should not create a config file")
	}
}

func TestUnknownKey(t *testing.T) {
	_, err := Get(t.TempDir(), "colour")
	var ke *KeyError
	if !errors.As(err, &ke) || ke.Key != "colour" {
		t.Errorf("Get(colour) error = %v, want KeyError", err)
	}
	if err := Set(t.TempDir(), "colour", "red"); !errors.As(err, &ke) {
		t.Errorf("Set(colour) error = %v, want KeyError", err)
	}
}

func TestSetActiveTab(t *testing.T) {
	dir := t.TempDir()
	if err := SetActiveTab(dir, "tab-team"); err != nil {
		t.Fatal(err)
	}
	cfg, _ := Load(dir)
	if cfg.ActiveTab != "tab-team" {
		t.Errorf("ActiveTab = %q, want tab-team", cfg.ActiveTab)
	}
}
