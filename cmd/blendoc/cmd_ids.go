package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var idsCmd = &cli.Command{
	Name:  "ids",
	Usage: "list every ID data-block found in the file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "type", Usage: "filter by SDNA type name, e.g. Object"},
	},
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		typeFilter := c.String("type")

		var out []recordView
		for _, rec := range f.IDs.Records {
			if typeFilter != "" && rec.TypeName != typeFilter {
				continue
			}
			out = append(out, recordView{
				Canonical: fmt.Sprintf("0x%x", rec.Canonical),
				Code:      rec.Code,
				TypeName:  rec.TypeName,
				IDName:    rec.IDName,
			})
		}

		return render(c, out, func() {
			for _, r := range out {
				fmt.Printf("%-8s %-20s %-24s %s\n", r.Code, r.TypeName, r.IDName, r.Canonical)
			}
		})
	},
}

type recordView struct {
	Canonical string `json:"canonical"`
	Code      string `json:"code"`
	TypeName  string `json:"type_name"`
	IDName    string `json:"id_name"`
}
