package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcus/teamdeck/internal/models"
)

// ErrMemberNotFound is returned when a member ID does not exist
var ErrMemberNotFound = errors.New("member not found")

const memberColumns = `id, name, role, team, email, bio, links, position, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var links string
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Team, &m.Email, &m.Bio, &links, &m.Position, &m.CreatedAt); err != nil {
		return nil, err
	}
	if links != "" {
		if err := json.Unmarshal([]byte(links), &m.Links); err != nil {
			return nil, fmt.Errorf("decode links for %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

func encodeLinks(links []models.Link) (string, error) {
	if len(links) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// insertMember fills in ID, position and created_at when missing
func insertMember(x execer, m *models.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		id, err := generateID()
		if err != nil {
			return fmt.Errorf("generate id: %w", err)
		}
		m.ID = id
	}
	if m.Position <= 0 {
		var last sql.NullInt64
		if err := x.QueryRow(`SELECT MAX(position) FROM members`).Scan(&last); err != nil {
			return err
		}
		m.Position = int(last.Int64) + 1
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	links, err := encodeLinks(m.Links)
	if err != nil {
		return err
	}

	_, err = x.Exec(`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, m.Team, m.Email, m.Bio, links, m.Position, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert member %s: %w", m.Name, err)
	}
	return nil
}

// CreateMember inserts a new member, assigning an ID and position when unset
func (db *DB) CreateMember(m *models.Member) error {
	return insertMember(db.conn, m)
}

// GetMember returns one member by ID (with or without the tm- prefix)
func (db *DB) GetMember(id string) (*models.Member, error) {
	id = NormalizeMemberID(id)
	row := db.conn.QueryRow(`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	return m, err
}

// ListMembersOptions filters ListMembers
type ListMembersOptions struct {
	Team  string // exact match, case-insensitive
	Limit int
}

// ListMembers returns members in display order
func (db *DB) ListMembers(opts ListMembersOptions) ([]models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	var args []any
	if opts.Team != "" {
		query += ` WHERE LOWER(team) = ?`
		args = append(args, strings.ToLower(opts.Team))
	}
	query += ` ORDER BY position ASC, name ASC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, opts.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// UpdateMember rewrites every field of an existing member
func (db *DB) UpdateMember(m *models.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	links, err := encodeLinks(m.Links)
	if err != nil {
		return err
	}
	res, err := db.conn.Exec(`UPDATE members SET name = ?, role = ?, team = ?, email = ?, bio = ?, links = ?, position = ? WHERE id = ?`,
		m.Name, m.Role, m.Team, m.Email, m.Bio, links, m.Position, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, m.ID)
	}
	return nil
}

// DeleteMember removes a member
func (db *DB) DeleteMember(id string) error {
	id = NormalizeMemberID(id)
	res, err := db.conn.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	return nil
}

// CountMembers returns the roster size
func (db *DB) CountMembers() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&n)
	return n, err
}

// ImportMembers inserts members in one transaction. Either all are stored
// or none are.
func (db *DB) ImportMembers(members []models.Member) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	for i := range members {
		if err := insertMember(tx, &members[i]); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("member %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(members), nil
}
