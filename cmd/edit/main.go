// Edit is a modeless, Acme-inspired text editor.
//
// Usage:
//
//	edit [FILE[:LINE]]
//
// Opening FILE with a trailing ":LINE" places the cursor at that line.
// With no FILE, edit starts on an empty, unnamed buffer.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/8l/edit/editor"
	"github.com/8l/edit/edit"
	"github.com/8l/edit/evloop"
	"github.com/8l/edit/gui"
	"github.com/8l/edit/window"
)

var (
	cpuProfile bool
	width      int
	height     int
)

func main() {
	root := &cobra.Command{
		Use:   "edit [FILE[:LINE]]",
		Short: "a modeless, Acme-inspired text editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&cpuProfile, "cpuprofile", false, "write a CPU profile to ./cpu.pprof")
	root.Flags().IntVar(&width, "width", 800, "initial window width, in pixels")
	root.Flags().IntVar(&height, "height", 600, "initial window height, in pixels")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	buf := edit.New()
	cursorLine := 0
	if len(args) > 0 {
		path, line := parseFileArg(args[0])
		cursorLine = line
		if err := buf.ReadFile(path, false); err != nil {
			return err
		}
		if w, err := buf.Watch(func() { log.Warn("file changed on disk", "path", path) }); err != nil {
			log.Warn("could not watch file", "path", path, "err", err)
		} else {
			defer w.Close()
		}
	}

	w := window.New(buf)
	if cursorLine > 0 {
		w.Cursor = w.Buf.Buf().SetLC(cursorLine-1, 0)
	}

	fr := window.NewFrame(width, height)
	fr.Add(0, w)

	loop, err := evloop.New()
	if err != nil {
		return err
	}
	defer loop.Close()

	g := gui.NewShiny(width, height, windowTitle(args))
	d := editor.New(loop, g, fr)
	return d.Run()
}

// parseFileArg splits a "path:line" argument into its path and
// 1-based line number, 0 if none was given.
func parseFileArg(arg string) (path string, line int) {
	i := strings.LastIndexByte(arg, ':')
	if i < 0 {
		return arg, 0
	}
	n, err := strconv.Atoi(arg[i+1:])
	if err != nil {
		return arg, 0
	}
	return arg[:i], n
}

func windowTitle(args []string) string {
	if len(args) == 0 {
		return "edit"
	}
	path, _ := parseFileArg(args[0])
	return path
}
