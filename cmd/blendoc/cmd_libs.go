package main

import (
	"fmt"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

var libsCmd = &cli.Command{
	Name:  "libs",
	Usage: "list linked-library data-blocks and each ID's link provenance",
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}

		libRecords, err := blend.ScanLibraryRecords(f.Dna, f.Pointers, f.Blocks, f.IDs)
		if err != nil {
			return err
		}
		linkRecords := blend.ScanIDLinkProvenance(f.Dna, f.IDs)

		out := struct {
			Libraries []blend.LibraryRecord `json:"libraries"`
			Links     []blend.LinkRecord    `json:"links"`
		}{libRecords, linkRecords}

		return render(c, out, func() {
			hr("libraries")
			for _, l := range libRecords {
				fmt.Printf("0x%x %s (relative=%v)\n", l.Canonical, l.LibraryPath, l.IsRelative)
			}
			hr("link provenance")
			for _, l := range linkRecords {
				if !l.Linked {
					continue
				}
				fmt.Printf("%-24s %-16s linked=%v confidence=%s\n", l.IDName, l.TypeName, l.Linked, l.Confidence)
			}
		})
	},
}
