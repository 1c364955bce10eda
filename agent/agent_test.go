package agent

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linescrub/linescrub/engine"
)

// fakeEngine lets tests drive the chain with deterministic transforms.
type fakeEngine struct {
	name string
	fn   func(string) (string, error)
}

func (f fakeEngine) Name() string { return f.name }

func (f fakeEngine) Transform(text string) (string, error) { return f.fn(text) }

func appendTag(tag string) func(string) (string, error) {
	return func(text string) (string, error) {
		return text + "|" + tag, nil
	}
}

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Name: "test", Level: hclog.Warn})
}

func TestRedactLine_SequentialComposition(t *testing.T) {
	a := NewAgent(Config{}, testLogger())
	a.slots = []engineSlot{
		{name: "c1", engine: fakeEngine{"c1", appendTag("c1")}, ready: true},
		{name: "c2", engine: fakeEngine{"c2", appendTag("c2")}, ready: true},
		{name: "c3", engine: fakeEngine{"c3", appendTag("c3")}, ready: true},
	}

	assert.Equal(t, "L|c1|c2|c3", a.RedactLine("L"))
}

func TestRedactLine_UnavailableEngine(t *testing.T) {
	a := NewAgent(Config{}, testLogger())
	a.slots = []engineSlot{
		{name: "c1", engine: fakeEngine{"c1", appendTag("c1")}, ready: true},
		{name: "c2"},
		{name: "c3", engine: fakeEngine{"c3", appendTag("c3")}, ready: true},
	}

	// The tag is prepended to c1's output, and c3 still runs on the tagged text.
	assert.Equal(t, "[C2 NOT AVAILABLE] L|c1|c3", a.RedactLine("L"))
}

func TestRedactLine_EngineError(t *testing.T) {
	failing := fakeEngine{"c2", func(string) (string, error) {
		return "", errors.New("boom")
	}}
	a := NewAgent(Config{}, testLogger())
	a.slots = []engineSlot{
		{name: "c1", engine: fakeEngine{"c1", appendTag("c1")}, ready: true},
		{name: "c2", engine: failing, ready: true},
		{name: "c3", engine: fakeEngine{"c3", appendTag("c3")}, ready: true},
	}

	// The diagnostic is prepended to the previous working text, not the erroring engine's output.
	assert.Equal(t, "[C2 ERROR: boom] L|c1|c3", a.RedactLine("L"))
}

func TestSetup(t *testing.T) {
	a := NewAgent(Config{}, testLogger())
	require.NoError(t, a.Setup())

	engines := a.Engines()
	require.Len(t, engines, len(engine.DefaultChain()))
	for _, e := range engines {
		assert.True(t, e.Ready, e.Name)
	}
}

func TestSetup_BadEngineConfigIsNonFatal(t *testing.T) {
	cfg := Config{
		Engine: engine.Config{
			Mask: engine.MaskConfig{MaskChar: "##"},
		},
	}
	a := NewAgent(cfg, testLogger())

	err := a.Setup()
	require.Error(t, err)

	engines := a.Engines()
	require.Len(t, engines, 3)
	assert.True(t, engines[0].Ready)
	assert.True(t, engines[1].Ready)
	assert.False(t, engines[2].Ready)

	// Lines still flow; the broken engine leaves a visible marker.
	out := a.RedactLine("hello world")
	assert.True(t, strings.HasPrefix(out, "[MASK NOT AVAILABLE] "), out)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile(t *testing.T) {
	upper := fakeEngine{"upper", func(text string) (string, error) {
		return strings.ToUpper(text), nil
	}}

	tcs := []struct {
		name        string
		input       string
		expect      string
		expectCount int
	}{
		{
			name:        "empty lines pass through uncounted",
			input:       "alpha\n\nbeta\n",
			expect:      "ALPHA\n\nBETA\n",
			expectCount: 2,
		},
		{
			name:        "final line without trailing newline still gets one",
			input:       "alpha\nbeta",
			expect:      "ALPHA\nBETA\n",
			expectCount: 2,
		},
		{
			name:        "empty file yields empty output",
			input:       "",
			expect:      "",
			expectCount: 0,
		},
		{
			name:        "whitespace-only line is not empty",
			input:       "  \n",
			expect:      "  \n",
			expectCount: 1,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "out.txt")
			a := NewAgent(Config{
				InputPath:  writeInput(t, tc.input),
				OutputPath: outPath,
			}, testLogger())
			a.slots = []engineSlot{{name: "upper", engine: upper, ready: true}}

			count, err := a.ProcessFile()
			require.NoError(t, err)
			assert.Equal(t, tc.expectCount, count)

			got, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, string(got))
		})
	}
}

func TestProcessFile_MissingInput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	a := NewAgent(Config{
		InputPath:  filepath.Join(t.TempDir(), "does_not_exist.txt"),
		OutputPath: outPath,
	}, testLogger())

	_, err := a.ProcessFile()
	require.Error(t, err)

	// The output file must not be created when the input is missing.
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessFile_ProgressCadence(t *testing.T) {
	// 250 raw lines, blanks included, should produce exactly two progress notices.
	var lines []string
	for i := 0; i < 250; i++ {
		if i%10 == 0 {
			lines = append(lines, "")
		} else {
			lines = append(lines, "text")
		}
	}
	input := strings.Join(lines, "\n") + "\n"

	buf := new(bytes.Buffer)
	l := hclog.New(&hclog.LoggerOptions{Name: "test", Output: buf, Level: hclog.Info})

	a := NewAgent(Config{
		InputPath:  writeInput(t, input),
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
	}, l)
	a.slots = []engineSlot{{name: "noop", engine: fakeEngine{"noop", func(s string) (string, error) { return s, nil }}, ready: true}}

	_, err := a.ProcessFile()
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(buf.String(), "Still processing"))
}

func TestDefaultOutputPath(t *testing.T) {
	tcs := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "nested path uses stem only",
			input:  "a/b/report.txt",
			expect: "report_redacted.txt",
		},
		{
			name:   "no extension",
			input:  "notes",
			expect: "notes_redacted.txt",
		},
		{
			name:   "other extension",
			input:  "/var/log/app.log",
			expect: "app_redacted.txt",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, DefaultOutputPath(tc.input))
		})
	}
}

func TestRun(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	a := NewAgent(Config{
		InputPath:  writeInput(t, "Name: John Smith\nEmail: none\n"),
		OutputPath: outPath,
	}, testLogger())

	errs := a.Run()
	require.Empty(t, errs)
	assert.Equal(t, 2, a.NumProcessed)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Name: <PERSON>\nEmail: none\n", string(got))
}
