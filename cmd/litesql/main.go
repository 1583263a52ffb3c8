package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/litesql/cmd/litesql/command"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = append(args, "query")
	}

	commands := map[string]cli.CommandFactory{
		"query": func() (cli.Command, error) {
			return &command.QueryCommand{}, nil
		},
		"tables": func() (cli.Command, error) {
			return &command.TablesCommand{}, nil
		},
	}

	litesqlCLI := &cli.CLI{
		Args:     args,
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("litesql"),
	}

	exitCode, err := litesqlCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
