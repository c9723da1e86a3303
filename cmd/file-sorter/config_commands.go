package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/0xmhha/file-sorter/pkg/config"
)

// configCommand handles configuration management subcommands.
type configCommand struct {
	configPath string
}

// Execute runs the config command with given arguments.
func (c *configCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "show":
		return c.runShow(subargs)
	case "path":
		return c.runPath()
	case "init":
		return c.runInit(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown config subcommand: %s", subcommand)
	}
}

// runShow displays the current configuration.
func (c *configCommand) runShow(args []string) error {
	fs := flag.NewFlagSet("config show", flag.ContinueOnError)
	format := fs.String("format", "yaml", "output format (yaml, json)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.NewLoader(c.configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch *format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case "yaml":
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Println("# Current Configuration")
		fmt.Println("# Source:", c.source())
		fmt.Println()
		fmt.Print(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}

// runPath shows the configuration file path.
func (c *configCommand) runPath() error {
	if c.configPath != "" {
		fmt.Println("Configuration file (from -config):", c.configPath)
		return nil
	}
	if env := os.Getenv(config.EnvConfig); env != "" {
		fmt.Printf("Configuration file (from %s): %s\n", config.EnvConfig, env)
		return nil
	}

	paths := []string{
		"./file-sorter.yaml",
		config.DefaultConfigPath(),
	}

	fmt.Println("Configuration file search paths (in order of precedence):")
	fmt.Println()

	for i, p := range paths {
		exists := "not found"
		if _, err := os.Stat(p); err == nil {
			exists = "found"
		}
		fmt.Printf("  %d. %s [%s]\n", i+1, p, exists)
	}

	fmt.Println()
	fmt.Println("Active configuration:", c.source())
	return nil
}

// runInit writes a starter configuration.
func (c *configCommand) runInit(args []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	output := fs.String("output", "", "output path (default: ~/.config/file-sorter/config.yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	outputPath := c.initPath(*output)

	if _, err := os.Stat(outputPath); err == nil && !*force {
		return fmt.Errorf("configuration file already exists at %s (use -force to overwrite)", outputPath)
	}

	if err := config.Save(config.Example(), outputPath); err != nil {
		return err
	}

	fmt.Printf("Starter configuration written to: %s\n", outputPath)
	return nil
}

// initPath picks the file config init writes.
func (c *configCommand) initPath(output string) string {
	switch {
	case output != "":
		return config.ExpandHome(output)
	case c.configPath != "":
		return config.ExpandHome(c.configPath)
	default:
		return config.DefaultConfigPath()
	}
}

// source returns the path of the active configuration file.
func (c *configCommand) source() string {
	if p := config.NewLoader(c.configPath).Path(); p != "" {
		return p
	}
	return "defaults (no config file found)"
}

// showHelp displays help for config command.
func (c *configCommand) showHelp() error {
	help := `Config - Configuration management

Usage:
  file-sorter config <subcommand> [flags]

Subcommands:
  show      Display current configuration
  path      Show configuration file paths
  init      Write a starter configuration

Show Flags:
  -format   Output format (yaml, json) (default: yaml)

Init Flags:
  -force    Overwrite an existing file
  -output   Output path for config file

Examples:
  # Show current configuration
  file-sorter config show

  # Show configuration in JSON format
  file-sorter config show -format json

  # Write a starter configuration
  file-sorter config init
`
	fmt.Print(help)
	return nil
}
