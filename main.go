package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/linescrub/linescrub/command"
	"github.com/linescrub/linescrub/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ui := &cli.BasicUi{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("linescrub", version.GetVersion().SemanticVersion())
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run":     command.RunCommandFactory(ui),
		"version": command.VersionCommandFactory(ui),
	}

	rc, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return command.Failure
	}
	return rc
}
