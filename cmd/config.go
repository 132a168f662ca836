package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/marcus/teamdeck/internal/config"
	"github.com/marcus/teamdeck/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change settings",
	Long: `Read and change settings stored in .teamdeck/config.json.

Keys:
  hover_mode      open cards when the pointer rests on them (true/false)
  hover_delay_ms  delay before a hovered card closes (default 300)
  mouse           capture mouse input (true/false)
  glamour_style   markdown theme for bios (dark, light, notty, ...)
  active_tab      tab shown on start (tab-team, tab-about)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.Get(getBaseDir(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Fprintln(output.Stdout, v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(getBaseDir(), args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		logger.Info("config: set", "key", args[0], "value", args[1])
		output.Success("%s = %s", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print every setting",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(output.Stdout, 0, 0, 2, ' ', 0)
		for _, k := range config.Keys() {
			v, err := config.Get(getBaseDir(), k)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			fmt.Fprintf(w, "%s\t%s\n", k, v)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
}
