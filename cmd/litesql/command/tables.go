package command

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// TablesCommand lists the tables defined in a database file's schema - the
// CLI's `.tables`-equivalent.
type TablesCommand struct{}

func (c *TablesCommand) Help() string {
	helpText := `
Usage: litesql tables [options]

Options:

	-db=""		Path to the SQLite-format database file
	-config=""	Optional YAML configuration file
`
	return strings.TrimSpace(helpText)
}

func (c *TablesCommand) Synopsis() string {
	return "Lists the tables in a database file"
}

func (c *TablesCommand) Run(args []string) int {
	var dbPath, configPath string

	cmdFlags := flag.NewFlagSet("tables", flag.ContinueOnError)
	cmdFlags.StringVar(&dbPath, "db", "", "database file")
	cmdFlags.StringVar(&configPath, "config", "", "config file")
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	if dbPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, c.Help())
		return 1
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %s\n", err.Error())
		return 1
	}
	logger := newLogger(cfg)

	db, closeDB, err := openDatabase(dbPath, cfg, logger)
	if err != nil {
		logger.Error(err)
		return 1
	}
	defer closeDB()

	names, err := db.Tables()
	if err != nil {
		logger.Error(err)
		return 1
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return 0
}
