package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/reslice/analysis"
	"github.com/jsphweid/reslice/config"
	"github.com/jsphweid/reslice/midi"
	"github.com/jsphweid/reslice/render"
	"github.com/jsphweid/reslice/report"
	"github.com/jsphweid/reslice/track"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, base)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	return cfg, cfg.Validate()
}

func pickAnalyzer(cmd *cobra.Command, cfg *config.Config) analysis.Analyzer {
	if events, _ := cmd.Flags().GetString(flagEvents); events != "" {
		return analysis.FileAnalyzer{Path: events}
	}
	return analysis.NewScriptAnalyzer(cfg.PythonPath, cfg.ScriptsDir, cfg.Strategy)
}

func convert(cmd *cobra.Command, audioPath string, base *config.Config) error {
	cfg, err := loadConfig(cmd, base)
	if err != nil {
		return err
	}

	info, err := analysis.Probe(audioPath)
	if err != nil {
		return err
	}

	res, err := pickAnalyzer(cmd, cfg).Analyze(cmd.Context(), audioPath)
	if err != nil {
		return err
	}
	if res.DurationSeconds == 0 {
		res.DurationSeconds = info.DurationSeconds
	}

	out, err := render.Render(cfg, res, log.Default())
	if err != nil {
		return err
	}

	s, err := track.Encode(out.Track, cfg.TrackOptions())
	if err != nil {
		return err
	}
	path := cfg.OutputPath()
	if err := midi.WriteMidiFile(path, s); err != nil {
		return err
	}

	report.NewReporter(cmd.OutOrStdout()).Print(report.Summary{
		BPM:         out.BPM,
		BPMDetected: out.BPMDetected,
		Events:      len(res.Events),
		Notes:       len(out.Notes),
		PPQN:        cfg.PPQN,
		Output:      path,
	})
	return nil
}
