package agent

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/linescrub/linescrub/engine"
)

// progressInterval is how many raw lines (blank lines included) pass between progress notices.
const progressInterval = 100

// engineSlot records one engine in the chain along with its readiness, decided once during Setup and never
// re-evaluated.
type engineSlot struct {
	name   string
	engine engine.Engine
	ready  bool
}

// Agent owns one redaction run: it constructs the engine chain, streams the input file through it line by
// line, and writes the redacted output.
type Agent struct {
	l     hclog.Logger
	slots []engineSlot

	Start        time.Time `json:"started_at"`
	End          time.Time `json:"ended_at"`
	Duration     string    `json:"duration"`
	NumProcessed int       `json:"num_processed"`
	Config       Config    `json:"configuration"`
}

// NewAgent takes a config and logger and produces an Agent ready for Setup.
func NewAgent(config Config, logger hclog.Logger) *Agent {
	return &Agent{
		l:      logger,
		Config: config,
	}
}

// Setup constructs each configured engine. A failed construction is not fatal: the engine's slot is marked
// not ready, a warning is logged, and every line it would have transformed carries a placeholder marker
// instead. The returned error aggregates the construction failures so the caller can surface them; the
// agent remains usable either way.
func (a *Agent) Setup() error {
	names := a.Config.Engines
	if len(names) == 0 {
		names = engine.DefaultChain()
	}

	var errs *multierror.Error
	a.slots = make([]engineSlot, 0, len(names))
	for _, name := range names {
		e, err := engine.New(name, a.Config.Engine)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("engine setup failed, engine=%s: %w", name, err))
			a.l.Warn("Engine unavailable; its lines will carry a placeholder marker", "engine", name, "error", err)
			a.slots = append(a.slots, engineSlot{name: name})
			continue
		}
		a.l.Debug("Engine ready", "engine", name)
		a.slots = append(a.slots, engineSlot{name: name, engine: e, ready: true})
	}
	return errs.ErrorOrNil()
}

// EngineStatus reports one engine's position in the chain and whether it initialized.
type EngineStatus struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// Engines reports the chain's readiness, in run order.
func (a *Agent) Engines() []EngineStatus {
	out := make([]EngineStatus, len(a.slots))
	for i, s := range a.slots {
		out[i] = EngineStatus{Name: s.name, Ready: s.ready}
	}
	return out
}

// RedactLine passes one non-empty line through the engine chain in order. Each engine receives the working
// text left by the engines before it. An unavailable engine prepends a placeholder tag; an engine error
// prepends a diagnostic tag. Neither stops the chain: the run favors complete line-for-line output with
// visible markers over aborting on one bad line.
func (a *Agent) RedactLine(text string) string {
	working := text
	for _, slot := range a.slots {
		if !slot.ready {
			working = fmt.Sprintf("[%s NOT AVAILABLE] %s", strings.ToUpper(slot.name), working)
			continue
		}
		out, err := slot.engine.Transform(working)
		if err != nil {
			a.l.Warn("Engine failed on line; splicing diagnostic into output", "engine", slot.name, "error", err)
			working = fmt.Sprintf("[%s ERROR: %s] %s", strings.ToUpper(slot.name), err, working)
			continue
		}
		working = out
	}
	return working
}

// ProcessFile streams the input file through the engine chain and writes the result. Lines are numbered
// from 1. A line that is empty after stripping its trailing newline is written through as a bare newline,
// skips the engines, and is not counted. Every output line ends in exactly one newline, including a final
// input line that lacked one. Returns the count of non-empty lines processed.
//
// The input is opened and confirmed before the output file is created, so a missing input never leaves an
// empty output file behind. A mid-stream read or write error aborts the remaining lines and leaves the
// partial output on disk as-is.
func (a *Agent) ProcessFile() (int, error) {
	inFile, err := os.Open(a.Config.InputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file, path=%s: %w", a.Config.InputPath, err)
	}
	defer inFile.Close()

	outPath := a.Config.OutputPath
	if outPath == "" {
		outPath = DefaultOutputPath(a.Config.InputPath)
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file, path=%s: %w", outPath, err)
	}
	defer outFile.Close()

	a.l.Info("Processing file", "input", a.Config.InputPath, "output", outPath)

	reader := bufio.NewReader(inFile)
	writer := bufio.NewWriter(outFile)

	lineNum := 0
	count := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return count, fmt.Errorf("read failed, line=%d: %w", lineNum+1, readErr)
		}
		if line != "" {
			lineNum++

			// Strip only the trailing newline; everything else in the line is preserved verbatim.
			content := strings.TrimSuffix(line, "\n")
			if content == "" {
				if _, err := writer.WriteString("\n"); err != nil {
					return count, fmt.Errorf("write failed, line=%d: %w", lineNum, err)
				}
			} else {
				count++
				if _, err := writer.WriteString(a.RedactLine(content) + "\n"); err != nil {
					return count, fmt.Errorf("write failed, line=%d: %w", lineNum, err)
				}
			}

			if lineNum%progressInterval == 0 {
				a.l.Info("Still processing", "lines", lineNum)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return count, fmt.Errorf("flush failed: %w", err)
	}
	return count, nil
}

// Run manages the agent's lifecycle: engine setup, file processing, and bookkeeping. Setup failures are
// logged as warnings and do not stop the run; only file-level errors are returned.
func (a *Agent) Run() []error {
	var errs []error
	a.Start = time.Now()

	if setupErr := a.Setup(); setupErr != nil {
		a.l.Warn("One or more engines failed to initialize; continuing with placeholders", "error", setupErr)
	}

	count, err := a.ProcessFile()
	a.NumProcessed = count
	if err != nil {
		errs = append(errs, err)
		a.l.Error("Failed processing file", "error", err)
	}

	a.recordEnd()
	return errs
}

func (a *Agent) recordEnd() {
	a.End = time.Now()
	a.Duration = fmt.Sprintf("%v seconds", a.End.Sub(a.Start).Seconds())
}
