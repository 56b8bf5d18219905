package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/reslice/midi"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	inspectFrom  uint64
	inspectLimit int
)

func init() {
	inspectCmd.Flags().Uint64Var(&inspectFrom, "from", 0, "first tick to list")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 0, "stop after this many note events per track (0 lists all)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the header and every event of a MIDI file with its absolute tick.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return inspect(cmd.OutOrStdout(), args[0], inspectFrom, inspectLimit)
	},
}

func inspect(w io.Writer, path string, from uint64, limit int) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	s = midi.Excerpt(s, from, limit)

	fmt.Fprintf(w, "tracks: %v\n", len(s.Tracks))
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		fmt.Fprintf(w, "ticks per beat: %v\n", uint16(mt))
	}
	for i, tr := range s.Tracks {
		var absTicks uint64
		for _, evt := range tr {
			absTicks += uint64(evt.Delta)
			fmt.Fprintf(w, "%d\t%6d\t%s\n", i, absTicks, evt.Message.String())
		}
	}
	return nil
}
