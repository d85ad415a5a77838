package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var chaseCmd = &cli.Command{
	Name:  "chase",
	Usage: "resolve a dotted field path, chasing pointers, starting from the selected struct instance",
	Flags: append(append([]cli.Flag{}, selectorFlags...),
		&cli.StringFlag{Name: "path", Required: true, Usage: "field path, e.g. scene.camera.data"},
		&cli.IntFlag{Name: "max-hops", Value: 64},
	),
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		root, err := resolveSelector(c, f)
		if err != nil {
			return err
		}

		policy := blend.DefaultChasePolicy()
		policy.MaxHops = c.Int("max-hops")

		result, err := blend.ChaseFromPtr(f.Dna, f.Pointers, root, c.String("path"), f.DefaultDecodeOptions(), policy)
		if err != nil {
			return err
		}

		return render(c, result, func() {
			if result.Stop != nil {
				fmt.Printf("stopped: %s (after %d hops)\n", result.Stop.Reason, len(result.Hops))
				return
			}
			printValue(result.Value, "")
		})
	},
}
