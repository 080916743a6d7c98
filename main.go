package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdsite/internal/commands"
	"github.com/gerunddev/mdsite/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		commands.Build(os.Args[2:])
	case "watch":
		commands.Watch(os.Args[2:])
	case "stop":
		commands.Stop()
	case "render":
		commands.Render(os.Args[2:])
	case "title":
		commands.Title(os.Args[2:])
	case "diff":
		commands.Diff(os.Args[2:])
	case "status":
		commands.Status()
	case "version", "-v", "--version":
		fmt.Printf("mdsite v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mdsite - Static site generator for markdown content

Usage:
  mdsite <command> [options]

Commands:
  build       Build the site (use --force to rebuild everything, --dry-run to preview)
  watch       Rebuild on an interval with a live dashboard
  stop        Stop the running watcher
  render      Print the HTML for a markdown file
  title       Print the title of a markdown file
  diff        Show how rebuilding a page would change it
  status      Display pages and pending changes
  version     Show version information
  help        Show this help message

Examples:
  mdsite build
  mdsite build --force
  mdsite build --dry-run
  mdsite watch --interval 5s
  mdsite render content/index.md
  mdsite title content/index.md
  mdsite diff content/blog/post.md
  mdsite status

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
