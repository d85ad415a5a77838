package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type dnaStructSummary struct {
	TypeName string   `json:"type_name"`
	Size     int      `json:"size"`
	Fields   []string `json:"fields"`
}

var dnaCmd = &cli.Command{
	Name:  "dna",
	Usage: "list SDNA struct definitions, or one struct's fields with --type",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "type", Usage: "limit output to a single struct by type name"},
	},
	Action: func(c *cli.Context) error {
		f, err := openFile(c)
		if err != nil {
			return err
		}
		dna := f.Dna

		var out []dnaStructSummary
		typeFilter := c.String("type")
		for _, s := range dna.Structs {
			typeName := dna.Types[s.TypeIdx]
			if typeFilter != "" && typeName != typeFilter {
				continue
			}
			size, _ := dna.TypeSize(s.TypeIdx)
			var fields []string
			for _, field := range s.Fields {
				fields = append(fields, fmt.Sprintf("%s %s", dna.Types[field.TypeIdx], dna.Names[field.NameIdx]))
			}
			out = append(out, dnaStructSummary{TypeName: typeName, Size: size, Fields: fields})
		}

		return render(c, out, func() {
			for _, s := range out {
				fmt.Printf("%s (%d bytes)\n", s.TypeName, s.Size)
				for _, field := range s.Fields {
					fmt.Printf("  %s\n", field)
				}
			}
		})
	},
}
