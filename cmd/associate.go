package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/marcus/teamdeck/internal/output"
	"github.com/marcus/teamdeck/internal/workdir"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(associateCmd, associationsCmd, dissociateCmd)
	associationsCmd.Flags().Bool("json", false, "JSON output")
}

// absDir returns path as a clean absolute path, defaulting to the working
// directory when path is empty.
func absDir(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine working directory: %w", err)
		}
		path = cwd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid directory path: %w", err)
	}
	return filepath.Clean(abs), nil
}

var associateCmd = &cobra.Command{
	Use:   "associate [dir] <roster-dir>",
	Short: "Use another directory's roster from a directory",
	Long: `Point a directory at the roster kept in another directory, so
teamdeck run from any checkout of a team's repos shows the same people
without a .teamdeck-root file in each.

With one argument the current directory is associated with it.

The roster directory must already hold a .teamdeck roster. Associations
live in ~/.config/teamdeck/associations.json.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := "", args[0]
		if len(args) == 2 {
			src, dst = args[0], args[1]
		}

		dir, err := absDir(src)
		if err != nil {
			return err
		}
		target, err := absDir(dst)
		if err != nil {
			return err
		}
		assoc, err := workdir.LoadAssociations()
		if err != nil {
			return fmt.Errorf("loading associations: %w", err)
		}
		if err := assoc.Add(dir, target); err != nil {
			return err
		}
		if err := assoc.Save(); err != nil {
			return fmt.Errorf("saving associations: %w", err)
		}

		logger.Info("config: associate", "dir", dir, "target", target)
		output.Success("%s now uses the roster in %s", dir, target)
		return nil
	},
}

var associationsCmd = &cobra.Command{
	Use:     "associations",
	Aliases: []string{"assoc"},
	Short:   "List directories that share a roster",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		assoc, err := workdir.LoadAssociations()
		if err != nil {
			return fmt.Errorf("loading associations: %w", err)
		}
		if len(assoc) == 0 {
			fmt.Fprintln(output.Stdout, "No associations. Create one with 'teamdeck config associate <roster-dir>'.")
			return nil
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(assoc.Sorted())
		}

		w := tabwriter.NewWriter(output.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DIRECTORY\tROSTER")
		for _, a := range assoc.Sorted() {
			fmt.Fprintf(w, "%s\t%s\n", a.Dir, a.Roster)
		}
		return w.Flush()
	},
}

var dissociateCmd = &cobra.Command{
	Use:   "dissociate [dir]",
	Short: "Stop sharing a roster with a directory",
	Long: `Remove the association for dir, or for the current directory when
none is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := ""
		if len(args) == 1 {
			src = args[0]
		}
		dir, err := absDir(src)
		if err != nil {
			return err
		}

		assoc, err := workdir.LoadAssociations()
		if err != nil {
			return fmt.Errorf("loading associations: %w", err)
		}
		if err := assoc.Remove(dir); err != nil {
			return err
		}
		if err := assoc.Save(); err != nil {
			return fmt.Errorf("saving associations: %w", err)
		}

		output.Success("removed association for %s", dir)
		return nil
	},
}
