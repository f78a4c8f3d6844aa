package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/1broseidon/paneld/internal/ipc"
)

func printPanelUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  paneld panel create [--x N --y N --width N --height N] [--copy]")
	fmt.Fprintln(w, "  paneld panel close <window-id>")
	fmt.Fprintln(w, "  paneld panel list")
	fmt.Fprintln(w, "  paneld panel move --x N --y N <window-id>")
	fmt.Fprintln(w, "  paneld panel resize --width N --height N <window-id>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneld panel <command> --help' for command-specific options.")
}

func runPanel(args []string) int {
	if len(args) == 0 {
		printPanelUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printPanelUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld panel create [--x N --y N --width N --height N] [--copy]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Create a floating panel. Geometry flags override the daemon's defaults;")
			fmt.Fprintln(os.Stderr, "omitted flags keep them. Prints the new window id.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		x := fs.Int("x", -1, "Left edge in pixels")
		y := fs.Int("y", -1, "Top edge in pixels")
		width := fs.Int("width", 0, "Panel width in pixels")
		height := fs.Int("height", 0, "Panel height in pixels")
		copyID := fs.Bool("copy", false, "Copy the new window id to the clipboard")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "panel create takes no arguments")
			fs.Usage()
			return 2
		}
		if (*width != 0 || *height != 0) && (*width <= 0 || *height <= 0) {
			fmt.Fprintln(os.Stderr, "panel create requires both --width and --height when either is set")
			return 2
		}

		id, err := client.CreatePanel()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if *x >= 0 && *y >= 0 {
			if err := client.SetPosition(id, float64(*x), float64(*y)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if *width > 0 && *height > 0 {
			if err := client.SetSize(id, float64(*width), float64(*height)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}

		if *copyID {
			if err := clipboard.WriteAll(id); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to copy window id to clipboard: %v\n", err)
			}
		}

		fmt.Println(id)
		return 0

	case "close":
		fs := flag.NewFlagSet("close", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld panel close <window-id>")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "panel close requires <window-id>")
			fs.Usage()
			return 2
		}
		if err := client.ClosePanel(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld panel list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List panel ids in creation order. When stdout is a terminal the")
			fmt.Fprintln(os.Stderr, "geometry is shown too; when piped, one bare id per line.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "panel list takes no arguments")
			fs.Usage()
			return 2
		}

		ids, err := client.ListPanels()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			for _, id := range ids {
				fmt.Println(id)
			}
			return 0
		}

		if len(ids) == 0 {
			fmt.Println("no panels")
			return 0
		}
		for _, id := range ids {
			if geom, err := client.GetGeometry(id); err == nil {
				fmt.Printf("%-24s %4dx%-4d at (%d, %d)\n", id, geom.Width, geom.Height, geom.X, geom.Y)
			} else {
				fmt.Println(id)
			}
		}
		return 0

	case "move":
		fs := flag.NewFlagSet("move", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld panel move --x N --y N <window-id>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		x := fs.Float64("x", 0, "New left edge in pixels")
		y := fs.Float64("y", 0, "New top edge in pixels")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "panel move requires <window-id>")
			fs.Usage()
			return 2
		}
		if err := client.SetPosition(fs.Arg(0), *x, *y); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "resize":
		fs := flag.NewFlagSet("resize", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: paneld panel resize --width N --height N <window-id>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		width := fs.Float64("width", 0, "New width in pixels")
		height := fs.Float64("height", 0, "New height in pixels")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "panel resize requires <window-id>")
			fs.Usage()
			return 2
		}
		if *width <= 0 || *height <= 0 {
			fmt.Fprintln(os.Stderr, "panel resize requires positive --width and --height")
			fs.Usage()
			return 2
		}
		if err := client.SetSize(fs.Arg(0), *width, *height); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown panel command: %s\n\n", args[0])
		printPanelUsage(os.Stderr)
		return 2
	}
}
