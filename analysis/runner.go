package analysis

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

const DefaultScript = "analyze.py"

// ScriptAnalyzer runs an external analysis script as
// `python <script> <audio> <out.json> --strategy <name>` and reads the JSON
// it leaves behind.
type ScriptAnalyzer struct {
	PythonPath string
	ScriptsDir string
	Script     string
	Strategy   string
	Logger     *log.Logger
}

func NewScriptAnalyzer(pythonPath, scriptsDir, strategy string) *ScriptAnalyzer {
	if pythonPath == "" {
		venvPython := filepath.Join(scriptsDir, ".venv", "bin", "python")
		if _, err := os.Stat(venvPython); err == nil {
			pythonPath = venvPython
		} else {
			pythonPath = "python3"
		}
	}
	return &ScriptAnalyzer{
		PythonPath: pythonPath,
		ScriptsDir: scriptsDir,
		Script:     DefaultScript,
		Strategy:   strategy,
		Logger:     log.Default(),
	}
}

func (a *ScriptAnalyzer) Analyze(ctx context.Context, audioPath string) (*Result, error) {
	dir, err := os.MkdirTemp("", "reslice-*")
	if err != nil {
		return nil, errors.Wrap(err, "create workspace")
	}
	defer os.RemoveAll(dir)

	outPath := filepath.Join(dir, "analysis.json")
	args := []string{filepath.Join(a.ScriptsDir, a.Script), audioPath, outPath}
	if a.Strategy != "" {
		args = append(args, "--strategy", a.Strategy)
	}

	cmd := exec.CommandContext(ctx, a.PythonPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	a.logger().Debug("analysis script finished", "script", a.Script, "took", time.Since(start))
	if err != nil {
		return nil, errors.Wrapf(err, "analysis failed (stderr: %s)", bytes.TrimSpace(stderr.Bytes()))
	}

	if _, err := os.Stat(outPath); os.IsNotExist(err) {
		return nil, ErrNoAnalysis
	}
	return ReadResult(outPath)
}

func (a *ScriptAnalyzer) logger() *log.Logger {
	if a.Logger == nil {
		return log.Default()
	}
	return a.Logger
}
