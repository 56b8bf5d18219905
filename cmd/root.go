package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/reslice/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reslice <audiofile>",
	Short: "Quantizes an audio recording into a MIDI file",
	Long: `Detects tempo, onsets and pitch in an audio file and writes the notes
snapped to a tracker grid (4 rows per beat) as a type 0 MIDI file.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return convert(cmd, args[0], config.Default())
	},
}

func init() {
	defaultPath, _ := config.ConfigPath()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addConvertFlags(rootCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
