// Package main provides the file-sorter CLI application.
//
// File Sorter watches directories and moves new or changed files into
// destination folders according to declarative rules, without ever
// overwriting an existing file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/0xmhha/file-sorter/pkg/resolvers"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Parse()

	if *showVersion {
		fmt.Printf("file-sorter %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "run":
		return runRunCommand(*configPath, args[1:])
	case "history":
		return runHistoryCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runRunCommand runs the run command.
func runRunCommand(configPath string, args []string) error {
	cmd, err := parseRunCommand(configPath, args)
	if err != nil {
		return err
	}
	return cmd.Execute()
}

func parseRunCommand(configPath string, args []string) (*runCommand, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	filter := fs.String("filter", "", "only watch roots whose path contains this text")
	dryRun := fs.Bool("dry-run", false, "report destinations without moving anything")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &runCommand{
		filter:     *filter,
		dryRun:     *dryRun,
		configPath: configPath,
	}, nil
}

// runHistoryCommand runs the history command.
func runHistoryCommand(configPath string, args []string) error {
	cmd, err := parseHistoryCommand(configPath, args)
	if err != nil {
		return err
	}
	return cmd.Execute()
}

func parseHistoryCommand(configPath string, args []string) (*historyCommand, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("n", 20, "number of recent moves to show")
	format := fs.String("format", "", "output format (text, json); default from config")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *limit < 0 {
		return nil, fmt.Errorf("-n must be >= 0, got %d", *limit)
	}

	return &historyCommand{
		limit:      *limit,
		format:     *format,
		configPath: configPath,
	}, nil
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `File Sorter - rule-based file organizer

Usage:
  file-sorter [flags] <command> [command flags]

Commands:
  run         Watch the configured roots and sort files
  history     Show recently recorded moves
  config      Configuration management (show, path, init)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Run Command Flags:
  -filter     Only watch roots whose path contains this text
  -dry-run    Report destinations without moving anything

History Command Flags:
  -n          Number of recent moves to show (default: 20)
  -format     Output format (text, json)

Resolvers:
  ` + strings.Join(resolvers.Names(), ", ") + `

Examples:
  # Write a starter configuration
  file-sorter config init

  # Start sorting
  file-sorter run

  # Only watch the Downloads root, without moving anything
  file-sorter run -filter Downloads -dry-run

  # Where did my file go?
  file-sorter history -n 50
`
	fmt.Print(usage)
	return nil
}
