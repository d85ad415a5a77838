package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

// sceneCmd is a canned chase recipe over a Scene's "world" and "camera"
// fields, used as a smoke test against real fixtures.
var sceneCmd = &cli.Command{
	Name:  "scene",
	Usage: "show a scene's world and camera references (--id defaults to the first Scene found)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "scene ID name; defaults to the first Scene in the file"},
	},
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		root, err := resolveSceneRoot(c, f)
		if err != nil {
			return err
		}

		policy := blend.DefaultChasePolicy()
		opts := f.DefaultDecodeOptions()

		type sceneView struct {
			World  string `json:"world,omitempty"`
			Camera string `json:"camera,omitempty"`
		}
		var view sceneView

		if world, err := blend.ChaseFromPtr(f.Dna, f.Pointers, root, "world", opts, policy); err == nil && world.Stop == nil {
			if n, ok := world.Value.Field("id"); ok {
				if name, ok := n.Field("name"); ok {
					view.World = name.Str
				}
			}
		}
		if cam, err := blend.ChaseFromPtr(f.Dna, f.Pointers, root, "camera", opts, policy); err == nil && cam.Stop == nil {
			if n, ok := cam.Value.Field("id"); ok {
				if name, ok := n.Field("name"); ok {
					view.Camera = name.Str
				}
			}
		}

		return render(c, view, func() {
			fmt.Printf("world:  %s\n", view.World)
			fmt.Printf("camera: %s\n", view.Camera)
		})
	},
}

func resolveSceneRoot(c *cli.Context, f *blend.BlendFile) (uint64, error) {
	if name := c.String("id"); name != "" {
		rec, ok := f.IDs.ByIDName[name]
		if !ok {
			return 0, cli.Exit(fmt.Sprintf("no ID data-block named %q", name), 1)
		}
		return rec.Canonical, nil
	}
	for _, rec := range f.IDs.Records {
		if rec.TypeName == "Scene" {
			return rec.Canonical, nil
		}
	}
	return 0, cli.Exit("no Scene data-block found in file", 1)
}
