package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

var historyNoColorFlag bool

var historyCmd = &cobra.Command{
	Use:   "history [count]",
	Short: "Show recently recorded requests",
	Long: `List requests recorded in the history database, newest first.
Recording is enabled by setting history_path in .objkit.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 20
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return errors.New("count must be a positive number")
			}
			count = n
		}

		rc, err := newRunContext(historyNoColorFlag, false)
		if err != nil {
			return err
		}
		defer rc.close()

		if rc.hist == nil {
			return errors.New("history is not enabled; set history_path in " + configFileHint())
		}

		entries, err := rc.hist.Recent(count)
		if err != nil {
			return err
		}
		rc.out.FormatHistory(entries)
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyNoColorFlag, "no-color", false, "Disable colored output")
}
