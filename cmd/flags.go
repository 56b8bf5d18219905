package cmd

import (
	"github.com/jsphweid/reslice/config"
	"github.com/spf13/cobra"
)

// flag names shared by the convert and slice commands
const (
	flagPPQN      = "ppqn"
	flagRowTicks  = "row-ticks"
	flagVelocity  = "velocity"
	flagChannel   = "channel"
	flagMinPitch  = "min-pitch"
	flagMaxPitch  = "max-pitch"
	flagThreshold = "threshold"
	flagStrategy  = "strategy"
	flagHoldLast  = "hold-last"
	flagNoClamp   = "no-clamp"
	flagNoOctave  = "no-octave-correction"
	flagBaseNote  = "base-note"
	flagOut       = "out"
	flagEvents    = "events"
)

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int(flagPPQN, 0, "ticks per quarter note")
	f.Int(flagRowTicks, 0, "grid resolution in ticks")
	f.Int(flagVelocity, 0, "note velocity (1-127)")
	f.Int(flagChannel, 0, "MIDI channel (0-15)")
	f.Int(flagMinPitch, 0, "lowest pitch of the register clamp")
	f.Int(flagMaxPitch, 0, "highest pitch of the register clamp")
	f.Float64(flagThreshold, 0, "minimum pitch confidence")
	f.String(flagStrategy, "", "pitch strategy: single, median or frame")
	f.Bool(flagHoldLast, false, "leave the last note ringing without a note off")
	f.Bool(flagNoClamp, false, "do not transpose notes into the register")
	f.Bool(flagNoOctave, false, "do not correct octave jumps")
	f.Int(flagBaseNote, 0, "key of the first slice")
	f.StringP(flagOut, "o", "", "output file")
	f.String(flagEvents, "", "read analysis results from this JSON file instead of running the analyzer")
}

// applyFlags copies every flag the user set onto c.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	setInt := func(name string, dst *int) {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	setInt(flagPPQN, &c.PPQN)
	setInt(flagRowTicks, &c.RowTicks)
	setInt(flagVelocity, &c.Velocity)
	setInt(flagChannel, &c.Channel)
	setInt(flagMinPitch, &c.MinPitch)
	setInt(flagMaxPitch, &c.MaxPitch)
	setInt(flagBaseNote, &c.BaseNote)

	if f.Changed(flagPPQN) && !f.Changed(flagRowTicks) && c.Mode == config.ModeTracker {
		c.RowTicks = c.PPQN / 4
	}
	if f.Changed(flagThreshold) {
		c.ConfidenceThreshold, _ = f.GetFloat64(flagThreshold)
	}
	if f.Changed(flagStrategy) {
		c.Strategy, _ = f.GetString(flagStrategy)
	}
	if f.Changed(flagHoldLast) {
		c.HoldLast, _ = f.GetBool(flagHoldLast)
	}
	if v, _ := f.GetBool(flagNoClamp); v {
		c.ClampRegister = false
	}
	if v, _ := f.GetBool(flagNoOctave); v {
		c.OctaveCorrection = false
	}
	if f.Changed(flagOut) {
		c.Output, _ = f.GetString(flagOut)
	}
}
