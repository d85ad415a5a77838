package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var refsCmd = &cli.Command{
	Name:  "refs",
	Usage: "list every pointer-typed field reachable from the selected struct instance",
	Flags: selectorFlags,
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		root, err := resolveSelector(c, f)
		if err != nil {
			return err
		}

		refs, err := blend.ScanRefsFromPtr(f.Dna, f.Pointers, f.IDs, root, f.DefaultRefScanOptions())
		if err != nil {
			return err
		}

		return render(c, refs, func() {
			for _, r := range refs {
				target := "(null)"
				if r.Resolved != nil {
					target = fmt.Sprintf("0x%x %s/%s", r.Resolved.Canonical, r.Resolved.TypeName, r.Resolved.IDName)
				} else if r.Ptr != 0 {
					target = fmt.Sprintf("0x%x (unresolved)", r.Ptr)
				}
				fmt.Printf("%-24s -> %s\n", r.Field, target)
			}
		})
	},
}
