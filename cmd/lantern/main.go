// lantern - fixed-point 3D transform toolkit
// Factor glTF node transforms and watch rotations interpolate in the terminal.
//
// Commands:
//
//	decompose  Print translation, rotation, scale and scale orientation per node
//	view       Interactive wireframe viewer driven by quaternion slerp
//	snapshot   Render one wireframe frame to a PNG file
//	info       Print the scalar representation of this build
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/render"
	"github.com/taigrr/lantern/pkg/scalar"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var commands = []command{
	{"decompose", "factor node transforms of a glTF file", runDecompose},
	{"view", "interactive slerp viewer", runView},
	{"snapshot", "render a wireframe frame to PNG", runSnapshot},
	{"info", "print the scalar backend", runInfo},
}

// errUsage is returned after a command has printed its own usage.
var errUsage = errors.New("invalid arguments")

func usage() {
	fmt.Fprintf(os.Stderr, "lantern - fixed-point 3D transform toolkit\n\n")
	fmt.Fprintf(os.Stderr, "Usage: lantern <command> [options] [args]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'lantern <command> -h' for command options.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	name := os.Args[1]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
		return
	}

	if name != "-h" && name != "--help" && name != "help" {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", name)
	}
	usage()
	os.Exit(1)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Printf("backend:  %s\n", scalar.Backend)
	fmt.Printf("epsilon:  %g\n", scalar.Epsilon[scalar.Real]().Float64())
	fmt.Printf("max:      %g\n", scalar.MaxValue[scalar.Real]().Float64())
	fmt.Printf("pi:       %.9g\n", scalar.Pi[scalar.Real]().Float64())
	return nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (render.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Vec3{}, fmt.Errorf("parse vector %q: want x,y,z", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return render.Vec3{}, fmt.Errorf("parse vector %q: %w", s, err)
		}
		v[i] = f
	}
	return math3d.V3f[scalar.Real](v[0], v[1], v[2]), nil
}

// parseColor parses "r,g,b".
func parseColor(s string) (render.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return render.RGB(r, g, b), nil
}
