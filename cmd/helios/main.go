package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "helios"
	app.Usage = "progressive path tracing renderer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a demo scene to disk",
			Description: `
Trace a bundled scene progressively for a number of frames, resolve the
accumulated radiance through the tone-mapping chain and write the result
as a PNG. An optional 16-bit TIFF keeps the linear values.`,
			Flags:  renderFlags,
			Action: renderAction,
		},
		{
			Name:   "info",
			Usage:  "print statistics for a bundled scene",
			Flags:  infoFlags,
			Action: infoAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
