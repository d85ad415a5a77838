package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

// cameraCmd is a canned chase recipe resolving a scene's active camera
// object down to its Camera data-block and rendering its fields.
var cameraCmd = &cli.Command{
	Name:  "camera",
	Usage: "show the decoded Camera data-block referenced by a scene's active camera",
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
		result, err := blend.ChaseFromPtr(f.Dna, f.Pointers, root, "camera.data", f.DefaultDecodeOptions(), policy)
		if err != nil {
			return err
		}
		if result.Stop != nil {
			return cli.Exit(fmt.Sprintf("chase stopped: %s (after %d hops)", result.Stop.Reason, len(result.Hops)), 1)
		}

		return render(c, result.Value, func() {
			printValue(result.Value, "")
		})
	},
}
