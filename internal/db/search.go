package db

import (
	"sort"
	"strings"

	"github.com/marcus/teamdeck/internal/models"
	"github.com/sahilm/fuzzy"
)

// SearchResult holds a member with relevance scoring for ranked search
type SearchResult struct {
	Member     models.Member
	Score      int    // higher = better match
	MatchField string // field that matched: 'id', 'name', 'role', 'team', 'email'
}

// memberSource adapts a member field to fuzzy.Source
type memberSource struct {
	members []models.Member
	field   func(*models.Member) string
}

func (s memberSource) String(i int) string { return s.field(&s.members[i]) }
func (s memberSource) Len() int            { return len(s.members) }

var searchFields = []struct {
	name   string
	weight int
	get    func(*models.Member) string
}{
	{"name", 3, func(m *models.Member) string { return m.Name }},
	{"role", 2, func(m *models.Member) string { return m.Role }},
	{"team", 2, func(m *models.Member) string { return m.Team }},
	{"email", 1, func(m *models.Member) string { return m.Email }},
}

// SearchMembersRanked fuzzy-matches query against name, role, team and
// email. An exact ID match always ranks first. Results are ordered by score,
// then roster position.
func (db *DB) SearchMembersRanked(query string) ([]SearchResult, error) {
	members, err := db.ListMembers(ListMembersOptions{})
	if err != nil {
		return nil, err
	}
	return RankMembers(members, query), nil
}

// RankMembers scores members against query without touching the database
func RankMembers(members []models.Member, query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	best := make(map[int]SearchResult)
	for _, f := range searchFields {
		for _, match := range fuzzy.FindFrom(query, memberSource{members: members, field: f.get}) {
			score := match.Score * f.weight
			if strings.EqualFold(match.Str, query) {
				score += 1000
			}
			if cur, ok := best[match.Index]; !ok || score > cur.Score {
				best[match.Index] = SearchResult{Member: members[match.Index], Score: score, MatchField: f.name}
			}
		}
	}
	for i := range members {
		if strings.EqualFold(members[i].ID, NormalizeMemberID(query)) {
			best[i] = SearchResult{Member: members[i], Score: 1 << 20, MatchField: "id"}
		}
	}

	results := make([]SearchResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sortResults(results)
	return results
}

func sortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Member.Position < results[j].Member.Position
	})
}
