package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/teamdeck/internal/workdir"
)

func TestAssociateListDissociate(t *testing.T) {
	_, out := setupRoster(t, false)
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	team := filepath.Join(tmp, "team")
	if err := os.MkdirAll(workdir.DataDir(team), 0755); err != nil {
		t.Fatal(err)
	}

	if err := associateCmd.RunE(associateCmd, []string{src, team}); err != nil {
		t.Fatalf("associate: %v", err)
	}

	out.Reset()
	associationsCmd.Flags().Set("json", "true")
	t.Cleanup(func() { associationsCmd.Flags().Set("json", "false") })
	if err := associationsCmd.RunE(associationsCmd, nil); err != nil {
		t.Fatalf("associations: %v", err)
	}
	var got []workdir.Association
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out.String(), err)
	}
	if len(got) != 1 || got[0].Dir != src || got[0].Roster != team {
		t.Errorf("associations = %+v", got)
	}

	if err := dissociateCmd.RunE(dissociateCmd, []string{src}); err != nil {
		t.Fatalf("dissociate: %v", err)
	}
	var notAssoc *workdir.NotAssociatedError
	if err := dissociateCmd.RunE(dissociateCmd, []string{src}); !errors.As(err, &notAssoc) {
		t.Errorf("second dissociate: err = %v, want NotAssociatedError", err)
	}
}

func TestAssociateRequiresRoster(t *testing.T) {
	setupRoster(t, false)
	bare := t.TempDir()

	var noRoster *workdir.NoRosterError
	if err := associateCmd.RunE(associateCmd, []string{t.TempDir(), bare}); !errors.As(err, &noRoster) {
		t.Errorf("err = %v, want NoRosterError", err)
	}
}
