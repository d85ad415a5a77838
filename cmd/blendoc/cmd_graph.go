package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var graphCmd = &cli.Command{
	Name:  "graph",
	Usage: "BFS-extract the pointer graph reachable from the selected struct instance",
	Flags: append(append([]cli.Flag{}, selectorFlags...),
		&cli.IntFlag{Name: "max-depth", Value: 16},
		&cli.BoolFlag{Name: "id-only", Usage: "keep only ID-rooted nodes"},
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

		opts := blend.DefaultGraphOptions(f.DefaultRefScanOptions())
		opts.MaxDepth = c.Int("max-depth")
		opts.IDOnly = c.Bool("id-only")

		result, err := blend.BuildGraphFromPtr(f.Dna, f.Pointers, f.IDs, root, opts)
		if err != nil {
			return err
		}

		return render(c, result, func() {
			fmt.Printf("nodes: %d, edges: %d, truncation: %s\n", len(result.Nodes), len(result.Edges), result.Truncation)
			for _, n := range result.Nodes {
				fmt.Printf("  0x%x %s %s %s\n", n.Canonical, n.Code, n.TypeName, n.IDName)
			}
			for _, e := range result.Edges {
				fmt.Printf("  0x%x --%s--> 0x%x\n", e.From, e.Field, e.To)
			}
		})
	},
}
