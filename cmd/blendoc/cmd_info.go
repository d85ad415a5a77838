package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type infoResult struct {
	Path        string `json:"path"`
	Compression string `json:"compression"`
	Format      string `json:"format"`
	Version     int    `json:"version"`
	PointerSize int    `json:"pointer_size"`
	Blocks      int    `json:"blocks"`
	Structs     int    `json:"structs"`
	IDBlocks    int    `json:"id_blocks"`
	Regime      string `json:"storage_regime"`
}

var infoCmd = &cli.Command{
	Name:  "info",
	Usage: "summarize the opened file's header, block count, and schema size",
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}

		format := "legacy"
		if f.Header.Format == 1 {
			format = "modern"
		}
		regime := "address_ranges"
		if f.Pointers.Regime() == 1 {
			regime = "stable_ids"
		}
		compression := "none"
		if f.Compression == 1 {
			compression = "zstd"
		}

		res := infoResult{
			Path:        f.Path,
			Compression: compression,
			Format:      format,
			Version:     f.Header.Version,
			PointerSize: f.Header.PointerSize,
			Blocks:      len(f.Blocks),
			Structs:     len(f.Dna.Structs),
			IDBlocks:    len(f.IDs.Records),
			Regime:      regime,
		}

		return render(c, res, func() {
			hr(fmt.Sprintf("%s", f.Path))
			fmt.Printf("compression:    %s\n", res.Compression)
			fmt.Printf("header format:  %s (v%d, %d-byte pointers)\n", res.Format, res.Version, res.PointerSize)
			fmt.Printf("blocks:         %d\n", res.Blocks)
			fmt.Printf("sdna structs:   %d\n", res.Structs)
			fmt.Printf("id blocks:      %d\n", res.IDBlocks)
			fmt.Printf("storage regime: %s\n", res.Regime)
		})
	},
}
