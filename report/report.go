package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Summary is what a conversion prints once it is done.
type Summary struct {
	BPM         float64
	BPMDetected bool
	Events      int
	Notes       int
	PPQN        int
	Output      string
}

// Reporter writes user facing lines, unlike the debug log which goes to stderr.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) BPM(bpm float64, detected bool) {
	if detected {
		fmt.Fprintf(r.out, "%s %.2f\n", labelStyle.Render("Detected BPM:"), bpm)
		return
	}
	fmt.Fprintf(r.out, "%s %.2f %s\n", labelStyle.Render("Detected BPM:"), bpm, warnStyle.Render("(fallback)"))
}

func (r *Reporter) Events(n int) {
	fmt.Fprintf(r.out, "Detected %d onsets\n", n)
}

func (r *Reporter) Saved(s Summary) {
	fmt.Fprintf(r.out, "Saved %s with %d notes at %.2f BPM, PPQN=%d\n",
		pathStyle.Render(s.Output), s.Notes, s.BPM, s.PPQN)
}

func (r *Reporter) Print(s Summary) {
	r.BPM(s.BPM, s.BPMDetected)
	r.Events(s.Events)
	r.Saved(s)
}
