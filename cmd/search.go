package cmd

import (
	"fmt"

	"github.com/marcus/teamdeck/internal/db"
	"github.com/marcus/teamdeck/internal/output"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search the roster",
	Long:  `Fuzzy match names, roles, teams and emails. Best matches come first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		query := args[0]
		results, err := database.SearchMembersRanked(query)
		if err != nil {
			output.Error("search failed: %v", err)
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(results) > limit {
			results = results[:limit]
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if results == nil {
				results = []db.SearchResult{}
			}
			return output.JSON(results)
		}

		for i := range results {
			fmt.Fprintf(output.Stdout, "%s  (%s)\n", output.FormatMemberShort(&results[i].Member), results[i].MatchField)
		}
		if len(results) == 0 {
			fmt.Fprintf(output.Stdout, "No members matching '%s'\n", query)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(output.Stdout, "teamdeck %s\n", version)
	},
}

func init() {
	rosterCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)

	searchCmd.Flags().IntP("limit", "n", 0, "maximum results")
	searchCmd.Flags().Bool("json", false, "JSON output")
}
