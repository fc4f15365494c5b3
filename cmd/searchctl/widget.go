package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/khoahotran/notion-blog/adapters/web/utterances"
	"github.com/khoahotran/notion-blog/internal/domain/comments"
)

// WidgetCommand prints the comments embed markup for a site owner.
func WidgetCommand() *cli.Command {
	return &cli.Command{
		Name:  "widget",
		Usage: "Print the Utterances comments embed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "github",
				Usage:   "GitHub account that owns the comments repository",
				Sources: cli.EnvVars("SITE_GITHUB"),
			},
			&cli.StringFlag{
				Name:    "repo-name",
				Usage:   "Comments repository name",
				Sources: cli.EnvVars("COMMENTS_REPO_NAME"),
			},
			&cli.BoolFlag{
				Name:  "dark",
				Usage: "Use the dark theme",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := comments.Config{GitHub: c.String("github"), RepoName: c.String("repo-name")}
			w := utterances.NewWidget(cfg, utterances.NewContainer(), c.Bool("dark"))
			w.Mount()
			out, err := w.HTML()
			if err != nil {
				return fmt.Errorf("rendering widget: %w", err)
			}
			_, err = fmt.Fprintln(os.Stdout, out)
			return err
		},
	}
}
