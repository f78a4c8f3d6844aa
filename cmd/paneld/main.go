package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/paneld/internal/config"
	"github.com/1broseidon/paneld/internal/ipc"
	"github.com/1broseidon/paneld/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: paneld daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: paneld daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "greet":
		os.Exit(runGreet(os.Args[2:]))
	case "panel":
		os.Exit(runPanel(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paneld <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the paneld daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  greet               Ask the daemon for a greeting")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  panel create        Create a floating panel")
	fmt.Fprintln(w, "  panel close         Close a panel by id")
	fmt.Fprintln(w, "  panel list          List panel ids")
	fmt.Fprintln(w, "  panel move          Move a panel")
	fmt.Fprintln(w, "  panel resize        Resize a panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout save         Save current panel arrangement")
	fmt.Fprintln(w, "  layout load         Recreate a saved arrangement")
	fmt.Fprintln(w, "  layout list         List saved arrangements")
	fmt.Fprintln(w, "  layout delete       Delete a saved arrangement")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive panel manager")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneld <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneld status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("panel_count:    %d\n", status.PanelCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	for _, d := range status.Displays {
		fmt.Printf("display:        %s %dx%d at (%d, %d)\n", d.Name, d.Width, d.Height, d.X, d.Y)
	}
	return 0
}

func runGreet(args []string) int {
	fs := flag.NewFlagSet("greet", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneld greet <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon for a greeting. Mostly useful as a connectivity check.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "greet requires <name>")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	greeting, err := client.Greet(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(greeting)
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  paneld config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  paneld config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/paneld/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/paneld/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			if *path == "" {
				cfg, err = config.Load()
			} else {
				cfg, err = config.LoadFromPath(*path)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: paneld tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive panel manager. Requires a running daemon for most actions.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓      Select panel")
		fmt.Fprintln(os.Stderr, "  n             Create panel with defaults")
		fmt.Fprintln(os.Stderr, "  c             Create panel with explicit geometry")
		fmt.Fprintln(os.Stderr, "  d, x          Close selected panel")
		fmt.Fprintln(os.Stderr, "  Shift+arrows  Move selected panel")
		fmt.Fprintln(os.Stderr, "  +/-           Grow/shrink selected panel")
		fmt.Fprintln(os.Stderr, "  r             Refresh")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C     Quit")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
