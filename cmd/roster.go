package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/teamdeck/internal/db"
	"github.com/marcus/teamdeck/internal/models"
	"github.com/marcus/teamdeck/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal is replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var rosterCmd = &cobra.Command{
	Use:     "roster",
	Aliases: []string{"members"},
	Short:   "Manage the team roster",
}

var rosterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List team members",
	Long: `List team members in roster order.

When stdout is not a terminal the output is tab-separated
(id, name, role, team, email) for use in pipes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		opts := db.ListMembersOptions{}
		opts.Team, _ = cmd.Flags().GetString("team")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		members, err := database.ListMembers(opts)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if members == nil {
				members = []models.Member{}
			}
			return output.JSON(members)
		}

		if !isTerminal(os.Stdout) {
			for i := range members {
				fmt.Fprintln(output.Stdout, output.FormatMemberPlain(&members[i]))
			}
			return nil
		}

		if len(members) == 0 {
			fmt.Fprintln(output.Stdout, "No team members. Add one with 'teamdeck roster add'.")
			return nil
		}

		if tree, _ := cmd.Flags().GetBool("tree"); tree {
			lines := output.RenderTreeLines(output.BuildTeamTree(members), output.TreeRenderOptions{
				ShowDetail: true,
				ShowCount:  true,
			})
			fmt.Fprintln(output.Stdout, strings.Join(lines, "\n"))
			return nil
		}

		for i := range members {
			fmt.Fprintln(output.Stdout, output.FormatMemberShort(&members[i]))
		}
		return nil
	},
}

var rosterGetCmd = &cobra.Command{
	Use:   "get <member-id>",
	Short: "Show one member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		m, err := database.GetMember(args[0])
		if err != nil {
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				output.JSONError("not_found", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(m)
		}
		fmt.Fprint(output.Stdout, output.FormatMemberLong(m))
		return nil
	},
}

var rosterAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a team member",
	Long: `Add a team member. Missing required fields are asked for
interactively when stdin is a terminal.

Links take the form label=url and may be repeated:
  teamdeck roster add "Ada Lovelace" --role Engineer --link site=https://ada.dev`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := memberFromFlags(cmd, args)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if (m.Name == "" || m.Role == "") && isTerminal(os.Stdin) {
			if err := memberForm(m).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
		}

		database, err := db.Initialize(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		if err := database.CreateMember(m); err != nil {
			output.Error("%v", err)
			return err
		}
		logger.Info("roster: added", "id", m.ID, "name", m.Name)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(m)
		}
		output.Success("added %s (%s)", m.Name, m.ID)
		return nil
	},
}

// memberFromFlags builds a member from add's argument and flags.
func memberFromFlags(cmd *cobra.Command, args []string) (*models.Member, error) {
	m := &models.Member{}
	if len(args) == 1 {
		m.Name = strings.TrimSpace(args[0])
	}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		m.Name = name
	}
	m.Role, _ = cmd.Flags().GetString("role")
	m.Team, _ = cmd.Flags().GetString("team")
	m.Email, _ = cmd.Flags().GetString("email")
	m.Bio, _ = cmd.Flags().GetString("bio")

	raw, _ := cmd.Flags().GetStringArray("link")
	for _, r := range raw {
		l, err := parseLink(r)
		if err != nil {
			return nil, err
		}
		m.Links = append(m.Links, l)
	}
	return m, nil
}

// parseLink parses "label=url" or a bare url.
func parseLink(s string) (models.Link, error) {
	label, url, ok := strings.Cut(s, "=")
	if !ok {
		label, url = "", s
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return models.Link{}, fmt.Errorf("invalid link %q: want label=url", s)
	}
	return models.Link{Label: strings.TrimSpace(label), URL: url}, nil
}

// memberForm asks for the fields of m, keeping any already set.
func memberForm(m *models.Member) *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.Name).Validate(required("name")),
			huh.NewInput().Title("Role").Value(&m.Role).Validate(required("role")),
			huh.NewInput().Title("Team").Value(&m.Team),
			huh.NewInput().Title("Email").Value(&m.Email),
		),
		huh.NewGroup(
			huh.NewText().Title("Bio (markdown)").Value(&m.Bio),
		),
	)
}

var rosterImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import members from a JSON array",
	Long: `Import members from a JSON array of objects with name, role, team,
email, bio and links fields. Use "-" to read stdin. The import is
all-or-nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			defer f.Close()
			r = f
		}

		members, err := decodeMembers(r)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		database, err := db.Initialize(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		n, err := database.ImportMembers(members)
		if err != nil {
			output.Error("import failed: %v", err)
			return err
		}
		logger.Info("roster: imported", "count", n)
		output.Success("imported %d members", n)
		return nil
	},
}

// decodeMembers reads a JSON array of members. IDs and positions in the
// input are ignored so imports never collide with existing rows.
func decodeMembers(r io.Reader) ([]models.Member, error) {
	var members []models.Member
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&members); err != nil {
		return nil, fmt.Errorf("parse members: %w", err)
	}
	for i := range members {
		members[i].ID = ""
		members[i].Position = 0
	}
	return members, nil
}

var rosterRemoveCmd = &cobra.Command{
	Use:     "remove <member-id>...",
	Aliases: []string{"rm"},
	Short:   "Remove team members",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		var failed int
		for _, id := range args {
			if err := database.DeleteMember(id); err != nil {
				output.Error("%v", err)
				failed++
				continue
			}
			output.Success("removed %s", db.NormalizeMemberID(id))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d removals failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterListCmd, rosterGetCmd, rosterAddCmd, rosterImportCmd, rosterRemoveCmd)

	rosterListCmd.Flags().String("team", "", "only members of this team")
	rosterListCmd.Flags().IntP("limit", "n", 0, "maximum members to list")
	rosterListCmd.Flags().Bool("tree", false, "group members by team")
	rosterListCmd.Flags().Bool("json", false, "JSON output")

	rosterGetCmd.Flags().Bool("json", false, "JSON output")

	rosterAddCmd.Flags().String("name", "", "full name")
	rosterAddCmd.Flags().StringP("role", "r", "", "role or title")
	rosterAddCmd.Flags().StringP("team", "t", "", "team")
	rosterAddCmd.Flags().StringP("email", "e", "", "email address")
	rosterAddCmd.Flags().String("bio", "", "markdown bio")
	rosterAddCmd.Flags().StringArray("link", nil, "link as label=url (repeatable)")
	rosterAddCmd.Flags().Bool("json", false, "JSON output")
}
