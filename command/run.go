package command

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"

	"github.com/linescrub/linescrub/agent"
	"github.com/linescrub/linescrub/engine"
	"github.com/linescrub/linescrub/hcl"
)

var _ cli.Command = &RunCommand{}

type RunCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// Output file location
	output string

	// Ordered engine chain
	engines []string

	// HCL file location
	config string
}

func (c *RunCommand) init() {
	const (
		outputUsageText  = "Path to the output file. Defaults to the input file's stem plus '_redacted.txt' in the current directory."
		oUsageText       = "Shorthand for -output"
		enginesUsageText = "Ordered, comma-separated list of redaction engines to run on each non-empty line. Each engine receives the previous engine's output. Defaults to 'scrub,entity,mask'."
		configUsageText  = "Path to HCL configuration file"
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an
	// `os.Exit(2)` on its own.
	c.flags = flag.NewFlagSet("run", flag.ContinueOnError)

	c.flags.StringVar(&c.output, "output", "", outputUsageText)
	c.flags.StringVar(&c.output, "o", "", oUsageText)
	c.flags.Var(&CSVFlag{&c.engines}, "engines", enginesUsageText)
	c.flags.StringVar(&c.config, "config", "", configUsageText)

	// When invalid flags are provided, Go will output a usage message of its own. If we direct our flag set
	// to io.Discard, it will effectively be hidden, allowing us to print our own Help message upon failure.
	c.flags.SetOutput(io.Discard)
}

// NewRunCommand produces a new *command pointer, initialized for use in a CLI application.
func NewRunCommand(ui cli.Ui) *RunCommand {
	c := &RunCommand{ui: ui}
	c.init()
	return c
}

// RunCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func RunCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewRunCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *RunCommand) Help() string {
	helpText := `Usage: linescrub run [options] <input-file>

Reads the input file line by line, passes each non-empty line through the configured redaction engines in
order, and writes the result to the output file. Empty lines pass through unchanged.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *RunCommand) Synopsis() string {
	return "Redact PII from a text file, line by line"
}

// Run executes the command.
func (c *RunCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return Failure
	}
	if c.flags.NArg() != 1 {
		c.ui.Warn("exactly one input file is required")
		c.ui.Warn(c.Help())
		return Failure
	}

	l := configureLogging("linescrub")

	config, err := c.buildAgentConfig(c.flags.Arg(0))
	if err != nil {
		c.ui.Error(err.Error())
		return Failure
	}

	// An engine name this build does not ship is fatal before any file is touched; a known engine that
	// fails to initialize at runtime is tolerated and marked unavailable instead.
	for _, name := range config.Engines {
		if !engine.Known(name) {
			c.ui.Error(fmt.Sprintf("unknown engine %q; this build provides: %s", name, strings.Join(engine.DefaultChain(), ", ")))
			return Failure
		}
	}

	a := agent.NewAgent(config, l)
	errs := a.Run()
	if 0 < len(errs) {
		return Failure
	}

	if err := writeSummary(os.Stdout, a); err != nil {
		l.Warn("failed to write run summary; please review the output file directly", "err", err)
		return Failure
	}
	c.ui.Output("Redaction complete. Review the output file to confirm all sensitive data was redacted.")

	return Success
}

// buildAgentConfig merges flag values over the HCL config file, flags winning, and expands home-relative
// paths.
func (c *RunCommand) buildAgentConfig(inputArg string) (agent.Config, error) {
	var config agent.Config

	if c.config != "" {
		cfgPath, err := homedir.Expand(c.config)
		if err != nil {
			return agent.Config{}, fmt.Errorf("failed to expand config path, path=%s: %w", c.config, err)
		}
		hclCfg, err := hcl.Parse(cfgPath)
		if err != nil {
			return agent.Config{}, fmt.Errorf("failed to load configuration, path=%s: %w", cfgPath, err)
		}
		engineCfg, err := hcl.BuildEngineConfig(hclCfg)
		if err != nil {
			return agent.Config{}, fmt.Errorf("invalid configuration, path=%s: %w", cfgPath, err)
		}
		config.Engine = engineCfg
		config.Engines = hclCfg.Engines
	}

	// Flags take precedence over the HCL engine list.
	if len(c.engines) > 0 {
		config.Engines = c.engines
	}
	if len(config.Engines) == 0 {
		config.Engines = engine.DefaultChain()
	}

	inputPath, err := homedir.Expand(inputArg)
	if err != nil {
		return agent.Config{}, fmt.Errorf("failed to expand input path, path=%s: %w", inputArg, err)
	}
	config.InputPath = inputPath

	if c.output != "" {
		outputPath, err := homedir.Expand(c.output)
		if err != nil {
			return agent.Config{}, fmt.Errorf("failed to expand output path, path=%s: %w", c.output, err)
		}
		config.OutputPath = outputPath
	}

	return config, nil
}

// writeSummary renders the engine chain and line count for the operator.
func writeSummary(w io.Writer, a *agent.Agent) error {
	tw := tabwriter.NewWriter(w, 0, 2, 4, ' ', 0)
	if _, err := fmt.Fprintln(tw, "engine\tstatus"); err != nil {
		return err
	}
	for _, e := range a.Engines() {
		status := "ready"
		if !e.Ready {
			status = "unavailable"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", e.Name, status); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "\nProcessed %d non-empty lines.\n", a.NumProcessed); err != nil {
		return err
	}
	return tw.Flush()
}

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV
// vars, and returns a configured and usable logger.
func configureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}

type CSVFlag struct {
	Values *[]string
}

func (s CSVFlag) String() string {
	if s.Values == nil {
		return ""
	}
	return strings.Join(*s.Values, ",")
}

func (s CSVFlag) Set(v string) error {
	*s.Values = strings.Split(v, ",")
	return nil
}
