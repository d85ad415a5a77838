// Command blendoc inspects .blend file contents offline: headers, SDNA
// schemas, decoded structs, pointer graphs, and ID provenance.
package main

import (
	"fmt"
	"log"
	"os"

	blend "github.com/go-blend/blendoc"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blendoc",
		Usage: "inspect .blend file contents offline",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "path to a .blend file"},
			&cli.BoolFlag{Name: "json", Usage: "render output as JSON instead of text"},
		},
		Commands: []*cli.Command{
			infoCmd,
			dnaCmd,
			decodeCmd,
			idsCmd,
			refsCmd,
			graphCmd,
			idgraphCmd,
			routeCmd,
			xrefCmd,
			walkCmd,
			showCmd,
			libsCmd,
			sceneCmd,
			cameraCmd,
			chaseCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openFile(c *cli.Context) (*blend.BlendFile, error) {
	path := c.String("file")
	f, err := blend.Open(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("open %s: %v", path, err), 1)
	}
	return f, nil
}
