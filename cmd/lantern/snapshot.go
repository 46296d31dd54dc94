package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

func runSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	out := fs.String("o", "lantern.png", "Output PNG path")
	width := fs.Int("width", 160, "Frame width in pixels")
	height := fs.Int("height", 120, "Frame height in pixels")
	scale := fs.Int("scale", 4, "Integer upscale factor of the PNG")
	euler := fs.String("euler", "30,45,0", "Model orientation as Z-Y-X fixed angles in degrees (x,y,z)")
	distance := fs.Float64("distance", defaultDistance, "Camera distance")
	bgColor := fs.String("bg", "16,18,32", "Background color (R,G,B)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lantern snapshot [options] [model.gltf|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 || *width <= 0 || *height <= 0 {
		fs.Usage()
		return errUsage
	}

	bg, err := parseColor(*bgColor)
	if err != nil {
		return err
	}
	degrees, err := parseVec3(*euler)
	if err != nil {
		return err
	}
	st, err := newStage(fs.Arg(0), *width, *height, bg)
	if err != nil {
		return err
	}
	st.zoom(*distance - st.distance)

	rot := math3d.IdentityTransform[scalar.Real]().ApplyEuler(degrees).Rotation()
	drawn := st.draw(rot)
	if err := st.fb.SavePNG(*out, *scale); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	fmt.Printf("Wrote %s: %s, %d edges drawn, %s\n", *out, st.label(), drawn, rot)
	return nil
}
