package cmd

import (
	"github.com/jsphweid/reslice/config"
	"github.com/spf13/cobra"
)

func init() {
	addConvertFlags(sliceCmd)
	rootCmd.AddCommand(sliceCmd)
}

var sliceCmd = &cobra.Command{
	Use:   "slice <audiofile>",
	Short: "Maps each onset to its own key for a sampler",
	Long: `Writes one note per onset at 480 ticks per beat, starting at key 36.
Each note lasts until the next onset and the last one rings out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return convert(cmd, args[0], config.Slicer())
	},
}
