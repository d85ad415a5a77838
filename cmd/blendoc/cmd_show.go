package main

import (
	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

// showCmd decodes a single resolved pointer, distinct from decode which
// decodes every instance of the whole block the selector resolves to.
var showCmd = &cli.Command{
	Name:  "show",
	Usage: "decode and render a single struct instance named by the selector",
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

		_, sv, err := blend.DecodePtrInstance(f.Dna, f.Pointers, ptr, f.DefaultDecodeOptions())
		if err != nil {
			return err
		}

		return render(c, sv, func() {
			printStructValue(sv, "")
		})
	},
}
