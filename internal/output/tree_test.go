package output

import (
	"strings"
	"testing"

	"github.com/marcus/teamdeck/internal/models"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	if lines := RenderTreeLines(nil, TreeRenderOptions{}); len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_SingleNode(t *testing.T) {
	nodes := []TreeNode{{ID: "tm-abc123", Title: "Ada Lovelace", Detail: "Engineer"}}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowDetail: true})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	for _, want := range []string{"└──", "tm-abc123:", "Ada Lovelace", "(Engineer)"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}

	lines = RenderTreeLines(nodes, TreeRenderOptions{})
	if strings.Contains(lines[0], "Engineer") {
		t.Errorf("detail should be hidden without ShowDetail: %q", lines[0])
	}
}

func TestRenderTreeLines_Nested(t *testing.T) {
	nodes := []TreeNode{
		{Title: "Platform", Children: []TreeNode{
			{ID: "tm-000001", Title: "Ada"},
			{ID: "tm-000002", Title: "Alan"},
		}},
		{Title: "Web", Children: []TreeNode{
			{ID: "tm-000003", Title: "Grace"},
		}},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowCount: true})

	want := []string{
		"├── Platform [2]",
		"│   ├── tm-000001: Ada",
		"│   └── tm-000002: Alan",
		"└── Web [1]",
		"    └── tm-000003: Grace",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeMaxDepth(t *testing.T) {
	root := TreeNode{Children: []TreeNode{
		{Title: "Platform", Children: []TreeNode{{Title: "Ada"}}},
	}}
	out := RenderTree(root, TreeRenderOptions{MaxDepth: 1})
	if strings.Contains(out, "Ada") {
		t.Errorf("MaxDepth 1 should hide members:\n%s", out)
	}
	if !strings.Contains(out, "Platform") {
		t.Errorf("expected team line:\n%s", out)
	}
}

func TestBuildTeamTree(t *testing.T) {
	members := []models.Member{
		{ID: "tm-1", Name: "Zed", Role: "Dev", Team: "web"},
		{ID: "tm-2", Name: "Ann", Role: "Dev"},
		{ID: "tm-3", Name: "Bea", Role: "Lead", Team: "Platform"},
		{ID: "tm-4", Name: "Cal", Role: "Dev", Team: "web"},
	}
	nodes := BuildTeamTree(members)

	var teams []string
	for _, n := range nodes {
		teams = append(teams, n.Title)
	}
	if got := strings.Join(teams, ","); got != "Platform,web,Unassigned" {
		t.Errorf("teams = %s, want Platform,web,Unassigned", got)
	}
	web := nodes[1]
	if len(web.Children) != 2 || web.Children[0].Title != "Zed" || web.Children[1].Title != "Cal" {
		t.Errorf("web members should keep roster order: %+v", web.Children)
	}
	if web.Children[0].Detail != "Dev" {
		t.Errorf("member detail = %q, want role", web.Children[0].Detail)
	}
}
