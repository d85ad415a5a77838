package main

import (
	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var decodeCmd = &cli.Command{
	Name:  "decode",
	Usage: "decode every struct instance in the block named by the selector",
	Flags: selectorFlags,
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		ptr, err := resolveSelector(c, f)
		if err != nil {
			return err
		}
		entry, _, ok := f.Pointers.Resolve(ptr)
		if !ok {
			return cli.Exit("selector did not resolve to a block", 1)
		}

		val, err := blend.DecodeBlockInstances(f.Dna, entry.Block, f.DefaultDecodeOptions())
		if err != nil {
			return err
		}

		return render(c, val, func() {
			printValue(val, "")
		})
	},
}
