package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var xrefCmd = &cli.Command{
	Name:  "xref",
	Usage: "find every ID data-block that references the selected struct instance",
	Flags: append(append([]cli.Flag{}, selectorFlags...),
		&cli.BoolFlag{Name: "include-unresolved", Usage: "also include edges matching the raw stored pointer"},
	),
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		target, err := resolveSelector(c, f)
		if err != nil {
			return err
		}

		opts := blend.DefaultXrefOptions(f.DefaultRefScanOptions())
		opts.IncludeUnresolved = c.Bool("include-unresolved")

		recs, err := blend.FindInboundRefsToPtr(f.Dna, f.Pointers, f.IDs, target, opts)
		if err != nil {
			return err
		}

		return render(c, recs, func() {
			for _, r := range recs {
				fmt.Printf("0x%x %s %s.%s (resolved=%v)\n", r.FromCanonical, r.FromTypeName, r.FromIDName, r.Field, r.Resolved)
			}
		})
	},
}
