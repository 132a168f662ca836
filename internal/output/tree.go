package output

import (
	"sort"
	"strconv"
	"strings"

	"github.com/marcus/teamdeck/internal/models"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Title    string
	Detail   string // shown after the title, e.g. a member's role
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowDetail bool // whether to show Detail
	ShowCount  bool // append child counts to nodes with children
}

// RenderTree renders the children of root as a tree
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		var parts []string
		if node.ID != "" {
			parts = append(parts, node.ID+":")
		}
		parts = append(parts, node.Title)
		if opts.ShowDetail && node.Detail != "" {
			parts = append(parts, "("+node.Detail+")")
		}
		if opts.ShowCount && len(node.Children) > 0 {
			parts = append(parts, "["+strconv.Itoa(len(node.Children))+"]")
		}

		lines = append(lines, prefix+connector+strings.Join(parts, " "))

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

// BuildTeamTree groups members under their team. Teams are sorted by name
// with unassigned members last; members keep roster order.
func BuildTeamTree(members []models.Member) []TreeNode {
	byTeam := make(map[string][]TreeNode)
	var teams []string
	for i := range members {
		m := &members[i]
		team := m.TeamOrDefault()
		if _, ok := byTeam[team]; !ok {
			teams = append(teams, team)
		}
		byTeam[team] = append(byTeam[team], TreeNode{ID: m.ID, Title: m.Name, Detail: m.Role})
	}
	sort.Slice(teams, func(i, j int) bool {
		if (teams[i] == "Unassigned") != (teams[j] == "Unassigned") {
			return teams[j] == "Unassigned"
		}
		return strings.ToLower(teams[i]) < strings.ToLower(teams[j])
	})

	nodes := make([]TreeNode, 0, len(teams))
	for _, team := range teams {
		nodes = append(nodes, TreeNode{Title: team, Children: byTeam[team]})
	}
	return nodes
}
