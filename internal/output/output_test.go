package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/marcus/teamdeck/internal/models"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestMessages(t *testing.T) {
	out, errOut := capture(t)

	Success("added %s", "Ada")
	Error("no member %s", "tm-x")
	Warning("slow")

	if !strings.Contains(out.String(), "added Ada") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "ERROR: no member tm-x") || !strings.Contains(errOut.String(), "WARNING: slow") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestJSONError(t *testing.T) {
	out, _ := capture(t)
	JSONError("not_found", "member not found")

	var got struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", out.String(), err)
	}
	if got.Error.Code != "not_found" || got.Error.Message != "member not found" {
		t.Errorf("got %+v", got)
	}
}

func TestFormatMember(t *testing.T) {
	m := &models.Member{
		ID: "tm-abc123", Name: "Ada", Role: "Engineer", Team: "Platform",
		Email: "ada@example.com", Bio: "Hello",
		Links:     []models.Link{{Label: "Site", URL: "https://ada.dev"}},
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	if got := FormatMemberPlain(m); got != "tm-abc123\tAda\tEngineer\tPlatform\tada@example.com" {
		t.Errorf("FormatMemberPlain = %q", got)
	}
	long := FormatMemberLong(m)
	for _, want := range []string{"Ada", "Engineer", "Team:  Platform", "Email: ada@example.com", "Site <https://ada.dev>", "2h ago", "Hello"} {
		if !strings.Contains(long, want) {
			t.Errorf("FormatMemberLong missing %q:\n%s", want, long)
		}
	}
	short := FormatMemberShort(m)
	if !strings.Contains(short, "tm-abc123") || !strings.Contains(short, "Ada") {
		t.Errorf("FormatMemberShort = %q", short)
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now, "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatTimeAgo(tt.t); got != tt.want {
			t.Errorf("FormatTimeAgo(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
	old := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := FormatTimeAgo(old); got != "2020-01-02" {
		t.Errorf("FormatTimeAgo(old) = %q", got)
	}
}
