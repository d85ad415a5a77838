package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var routeCmd = &cli.Command{
	Name:  "route",
	Usage: "find the shortest reference path between two struct instances",
	Flags: pairedSelectorFlags("from", "to"),
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		from, err := resolvePrefixed(c, f, "from")
		if err != nil {
			return err
		}
		to, err := resolvePrefixed(c, f, "to")
		if err != nil {
			return err
		}

		opts := blend.DefaultRouteOptions(f.DefaultRefScanOptions())
		result, err := blend.FindRouteBetweenPtrs(f.Dna, f.Pointers, from, to, opts)
		if err != nil {
			return err
		}

		return render(c, result, func() {
			if !result.Found {
				fmt.Printf("no route found (visited %d nodes, truncation: %s)\n", result.Visited, result.Truncation)
				return
			}
			fmt.Printf("route of length %d (visited %d nodes):\n", len(result.Path), result.Visited)
			for _, step := range result.Path {
				fmt.Printf("  0x%x --%s--> 0x%x\n", step.From, step.Field, step.To)
			}
		})
	},
}
