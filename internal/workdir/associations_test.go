package workdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// roster makes dir look like a directory holding a teamdeck roster.
func roster(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(DataDir(dir), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestAssociationsAddSaveLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	empty, err := LoadAssociations()
	if err != nil {
		t.Fatalf("LoadAssociations: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no associations, got %v", empty)
	}

	platform := roster(t, filepath.Join(home, "teams", "platform"))
	web := roster(t, filepath.Join(home, "teams", "web"))
	assoc := Associations{}
	if err := assoc.Add(filepath.Join(home, "src", "api")+"/", platform); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := assoc.Add(filepath.Join(home, "src", "app"), web); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := assoc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadAssociations()
	if err != nil {
		t.Fatalf("LoadAssociations: %v", err)
	}
	got := loaded.Sorted()
	want := []Association{
		{Dir: filepath.Join(home, "src", "api"), Roster: platform},
		{Dir: filepath.Join(home, "src", "app"), Roster: web},
	}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAssociationsAddRejects(t *testing.T) {
	tmp := t.TempDir()
	bare := filepath.Join(tmp, "bare")
	if err := os.MkdirAll(bare, 0755); err != nil {
		t.Fatal(err)
	}

	assoc := Associations{}
	var noRoster *NoRosterError
	if err := assoc.Add(tmp, bare); !errors.As(err, &noRoster) {
		t.Errorf("Add without roster: err = %v, want NoRosterError", err)
	}
	if err := assoc.Add("src", roster(t, filepath.Join(tmp, "team"))); err == nil {
		t.Error("Add with a relative dir should fail")
	}
	if len(assoc) != 0 {
		t.Errorf("rejected adds changed the set: %v", assoc)
	}
}

func TestAssociationsRemove(t *testing.T) {
	tmp := t.TempDir()
	assoc := Associations{}
	if err := assoc.Add(filepath.Join(tmp, "src"), roster(t, filepath.Join(tmp, "team"))); err != nil {
		t.Fatal(err)
	}

	if err := assoc.Remove(filepath.Join(tmp, "src") + "/"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	var notAssoc *NotAssociatedError
	if err := assoc.Remove(filepath.Join(tmp, "src")); !errors.As(err, &notAssoc) {
		t.Errorf("second Remove: err = %v, want NotAssociatedError", err)
	}
}

func TestLookupAssociationSkipsMissingRoster(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	src := filepath.Join(home, "src")
	team := roster(t, filepath.Join(home, "team"))
	assoc := Associations{}
	if err := assoc.Add(src, team); err != nil {
		t.Fatal(err)
	}
	if err := assoc.Save(); err != nil {
		t.Fatal(err)
	}

	if got, ok := LookupAssociation(src); !ok || got != team {
		t.Fatalf("LookupAssociation = %q, %v; want %q", got, ok, team)
	}
	if _, ok := LookupAssociation(filepath.Join(home, "other")); ok {
		t.Error("unassociated dir should not resolve")
	}

	if err := os.RemoveAll(DataDir(team)); err != nil {
		t.Fatal(err)
	}
	if _, ok := LookupAssociation(src); ok {
		t.Error("association to a removed roster should be skipped")
	}
}

func TestResolveBaseDirPrefersRootFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	project := filepath.Join(home, "project")
	viaRoot := roster(t, filepath.Join(home, "root-target"))
	viaAssoc := roster(t, filepath.Join(home, "assoc-target"))
	if err := os.MkdirAll(project, 0755); err != nil {
		t.Fatal(err)
	}

	assoc := Associations{}
	if err := assoc.Add(project, viaAssoc); err != nil {
		t.Fatal(err)
	}
	if err := assoc.Save(); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(project); got != viaAssoc {
		t.Errorf("ResolveBaseDir = %s, want association %s", got, viaAssoc)
	}

	if err := os.WriteFile(filepath.Join(project, rootFile), []byte(viaRoot), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(project); got != viaRoot {
		t.Errorf("ResolveBaseDir = %s, want root file target %s", got, viaRoot)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	if err := WriteFileAtomic(path, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":2}` {
		t.Errorf("content = %s", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
