package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var walkCmd = &cli.Command{
	Name:  "walk",
	Usage: "follow a named pointer field (default: next) to enumerate a linked chain",
	Flags: append(append([]cli.Flag{}, selectorFlags...),
		&cli.StringFlag{Name: "next-field", Value: "next"},
		&cli.IntFlag{Name: "max-steps", Value: 256},
	),
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		start, err := resolveSelector(c, f)
		if err != nil {
			return err
		}

		opts := blend.DefaultWalkOptions(f.DefaultRefScanOptions())
		opts.NextField = c.String("next-field")
		opts.MaxSteps = c.Int("max-steps")

		result, err := blend.WalkPtrChain(f.Dna, f.Pointers, f.IDs, start, opts)
		if err != nil {
			return err
		}

		return render(c, result, func() {
			for _, item := range result.Items {
				fmt.Printf("[%d] 0x%x %s %s %s\n", item.Index, item.Canonical, item.Code, item.TypeName, item.IDName)
			}
			if result.Stop != nil {
				fmt.Printf("stopped at step %d: %s\n", result.Stop.Step, result.Stop.Reason)
			}
		})
	},
}
