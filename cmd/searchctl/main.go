package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "searchctl",
		Usage: "Query and inspect a running notion-blog API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Base URL of the blog API",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("SEARCHCTL_ENDPOINT"),
			},
		},
		Commands: []*cli.Command{
			SearchCommand(),
			WidgetCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
