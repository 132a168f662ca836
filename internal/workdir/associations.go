package workdir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const associationsFile = "associations.json"

// NoRosterError is returned when an association target has no .teamdeck
// directory to read a roster from.
type NoRosterError struct {
	Dir string
}

func (e *NoRosterError) Error() string {
	return fmt.Sprintf("no roster in %s (expected %s)", e.Dir, DataDir(e.Dir))
}

// NotAssociatedError is returned when removing a directory that has no
// association.
type NotAssociatedError struct {
	Dir string
}

func (e *NotAssociatedError) Error() string {
	return fmt.Sprintf("no association found for %s", e.Dir)
}

// Association points a working directory at the directory holding its roster.
type Association struct {
	Dir    string `json:"dir"`
	Roster string `json:"roster"`
}

// Associations maps clean absolute working directories to roster directories.
type Associations map[string]string

// UserConfigDir returns ~/.config/teamdeck, creating it if needed.
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "teamdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadAssociations reads ~/.config/teamdeck/associations.json. A missing
// file is an empty set.
func LoadAssociations() (Associations, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, associationsFile))
	if os.IsNotExist(err) {
		return Associations{}, nil
	}
	if err != nil {
		return nil, err
	}

	assoc := Associations{}
	if err := json.Unmarshal(data, &assoc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", associationsFile, err)
	}
	return assoc, nil
}

// Save writes the associations back to the user config directory.
func (a Associations) Save() error {
	dir, err := UserConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(dir, associationsFile), data)
}

// Add associates dir with the roster kept in roster. Both must be absolute,
// and roster must already hold a .teamdeck directory.
func (a Associations) Add(dir, roster string) error {
	if !filepath.IsAbs(dir) || !filepath.IsAbs(roster) {
		return fmt.Errorf("association paths must be absolute: %q -> %q", dir, roster)
	}
	roster = filepath.Clean(roster)
	if !hasDataDir(roster) {
		return &NoRosterError{Dir: roster}
	}
	a[filepath.Clean(dir)] = roster
	return nil
}

// Remove drops the association for dir.
func (a Associations) Remove(dir string) error {
	dir = filepath.Clean(dir)
	if _, ok := a[dir]; !ok {
		return &NotAssociatedError{Dir: dir}
	}
	delete(a, dir)
	return nil
}

// Sorted returns the associations ordered by working directory.
func (a Associations) Sorted() []Association {
	out := make([]Association, 0, len(a))
	for d, r := range a {
		out = append(out, Association{Dir: d, Roster: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out
}

// LookupAssociation returns the roster directory associated with dir. Targets
// that are relative or whose roster has since been removed are skipped.
func LookupAssociation(dir string) (string, bool) {
	assoc, err := LoadAssociations()
	if err != nil {
		return "", false
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	target, ok := assoc[filepath.Clean(dir)]
	if !ok || !filepath.IsAbs(target) || !hasDataDir(target) {
		return "", false
	}
	return filepath.Clean(target), true
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
