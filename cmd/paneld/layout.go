package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/paneld/internal/config"
	"github.com/1broseidon/paneld/internal/ipc"
	"github.com/1broseidon/paneld/internal/store"
)

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  paneld layout save <name>")
	fmt.Fprintln(w, "  paneld layout load <name>")
	fmt.Fprintln(w, "  paneld layout list")
	fmt.Fprintln(w, "  paneld layout delete <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneld layout <command> --help' for command-specific options.")
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printLayoutUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "save":
		fs := flag.NewFlagSet("save", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld layout save <name>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Save the geometry of every live panel under a layout name.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "layout save requires <name>")
			fs.Usage()
			return 2
		}
		if err := client.SaveLayout(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "load":
		fs := flag.NewFlagSet("load", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld layout load <name>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Create one panel per saved geometry. Prints the new window ids.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "layout load requires <name>")
			fs.Usage()
			return 2
		}
		ids, err := client.LoadLayout(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return 0

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld layout list")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "layout list takes no arguments")
			fs.Usage()
			return 2
		}
		names, err := client.ListLayouts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, name := range names {
			fmt.Printf("- %s\n", name)
		}
		return 0

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld layout delete <name>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Remove a saved layout. Operates on the layouts file directly and")
			fmt.Fprintln(os.Stderr, "does not need the daemon.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "layout delete requires <name>")
			fs.Usage()
			return 2
		}
		path, err := config.LayoutsPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := store.New(path).Delete(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}
