package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
	"github.com/taigrr/lantern/pkg/scene"
)

func runDecompose(args []string) error {
	fs := flag.NewFlagSet("decompose", flag.ContinueOnError)
	center := fs.String("center", "0,0,0", "Center of rotation and scale (x,y,z)")
	world := fs.Bool("world", false, "Factor world transforms instead of local ones")
	bake := fs.String("bake", "", "Write a copy with node matrices replaced by TRS (.gltf or .glb)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lantern decompose [options] <model.gltf|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	c, err := parseVec3(*center)
	if err != nil {
		return err
	}
	s, err := scene.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := decompose(os.Stdout, s, c, *world); err != nil {
		return err
	}

	if *bake == "" {
		return nil
	}
	baked, err := scene.BakeTRS(s.Doc)
	if err != nil {
		// Nodes that cannot be expressed as TRS keep their matrix.
		for _, e := range unjoin(err) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
	}
	if err := scene.Save(s.Doc, *bake); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Baked %d node(s) to %s\n", baked, *bake)
	return nil
}

// decompose prints the factored transform of every node, indented by depth.
func decompose(w io.Writer, s *scene.Scene, center scene.Vec3, world bool) error {
	return s.Walk(func(n *scene.Node, wt scene.Transform) error {
		indent := strings.Repeat("  ", depth(s, n.Index))
		name := n.Name
		if name == "" {
			name = "(unnamed)"
		}
		src := "trs"
		if n.Matrix {
			src = "matrix"
		}
		if _, err := fmt.Fprintf(w, "%snode %d %s [%s]\n", indent, n.Index, name, src); err != nil {
			return err
		}

		m := n.Local
		if world {
			m = wt
		}
		d, ok := m.Decompose(center)
		if !ok {
			_, err := fmt.Fprintf(w, "%s  singular\n", indent)
			return err
		}

		lines := [][2]string{
			{"translation", formatVec(d.Translation)},
			{"rotation", d.Rotation.String()},
			{"euler", formatVec(d.Rotation.Transform().Euler())},
			{"scale", formatVec(d.Scale)},
		}
		if d.Scale != math3d.Splat3(d.Scale.X) {
			lines = append(lines, [2]string{"orientation", d.ScaleOrientation.String()})
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "%s  %-12s %s\n", indent, l[0], l[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

func depth(s *scene.Scene, i int) int {
	d := 0
	for p := s.Nodes[i].Parent; p >= 0; p = s.Nodes[p].Parent {
		d++
	}
	return d
}

func formatVec(v math3d.Vec3[scalar.Real]) string {
	a := v.Float64s()
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", a[0], a[1], a[2])
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
