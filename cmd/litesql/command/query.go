package command

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// QueryCommand opens a database file and executes a single SELECT against
// it, printing one line per row.
type QueryCommand struct{}

func (c *QueryCommand) Help() string {
	helpText := `
Usage: litesql query [options] <sql>

Options:

	-db=""		Path to the SQLite-format database file
	-config=""	Optional YAML configuration file
`
	return strings.TrimSpace(helpText)
}

func (c *QueryCommand) Synopsis() string {
	return "Runs a SELECT statement against a database file"
}

func (c *QueryCommand) Run(args []string) int {
	var dbPath, configPath string

	cmdFlags := flag.NewFlagSet("query", flag.ContinueOnError)
	cmdFlags.StringVar(&dbPath, "db", "", "database file")
	cmdFlags.StringVar(&configPath, "config", "", "config file")
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	sql := strings.Join(cmdFlags.Args(), " ")
	if dbPath == "" || sql == "" {
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

	result, err := db.Select(sql)
	if err != nil {
		logger.Error(err)
		return 1
	}

	fmt.Println(strings.Join(result.Columns, "|"))
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Println(strings.Join(cells, "|"))
	}

	hits, misses := db.Stats()
	logger.Debugf("page cache: %d hits, %d misses", hits, misses)

	return 0
}
