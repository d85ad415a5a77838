package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var idgraphCmd = &cli.Command{
	Name:  "idgraph",
	Usage: "build the whole-file ID-to-ID reference graph",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "prefix", Usage: "only scan owners whose id_name has this prefix"},
		&cli.StringFlag{Name: "type", Usage: "only scan owners with this SDNA type name"},
	},
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}

		opts := blend.DefaultGraphOptions(f.DefaultRefScanOptions())
		result, err := blend.BuildIDGraph(f.Dna, f.Pointers, f.IDs, opts, c.String("prefix"), c.String("type"))
		if err != nil {
			return err
		}

		return render(c, result, func() {
			fmt.Printf("nodes: %d, edges: %d, truncation: %s\n", len(result.Nodes), len(result.Edges), result.Truncation)
			for _, e := range result.Edges {
				fmt.Printf("  0x%x --%s--> 0x%x\n", e.From, e.Field, e.To)
			}
		})
	},
}
