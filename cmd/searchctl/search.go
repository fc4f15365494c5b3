package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/khoahotran/notion-blog/pkg/searchclient"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 0, 2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the blog's Notion workspace",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ancestor",
				Usage: "Restrict results to pages under this page id",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "repeat",
				Usage: "Run the query this many times through one client to observe memoization",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw results as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("a search query is required")
			}
			params := searchclient.SearchParams{
				Query:      c.Args().First(),
				AncestorID: c.String("ancestor"),
				Limit:      c.Int("limit"),
			}
			client := searchclient.NewForBaseURL(c.String("endpoint"))
			return runSearch(ctx, os.Stdout, client, params, c.Int("repeat"), c.Bool("json"))
		},
	}
}

func runSearch(ctx context.Context, out io.Writer, client *searchclient.Client, params searchclient.SearchParams, repeat int, asJSON bool) error {
	if repeat < 1 {
		repeat = 1
	}

	var results *searchclient.SearchResults
	for i := 0; i < repeat; i++ {
		start := time.Now()
		res, err := client.Search(ctx, params)
		if err != nil {
			return fmt.Errorf("searching %q: %w", params.Query, err)
		}
		if repeat > 1 {
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("run %d took %s", i+1, time.Since(start).Round(time.Microsecond))))
		}
		results = res
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d results for %q", results.Total, params.Query)))
	if len(results.Results) == 0 {
		fmt.Fprintln(out, "No results found")
		return nil
	}
	for i, r := range results.Results {
		fmt.Fprintln(out, resultStyle.Render(formatResult(i+1, r)))
	}
	return nil
}

func formatResult(n int, r searchclient.SearchResult) string {
	text := fmt.Sprintf("%d. %s", n, r.ID)
	if r.Highlight.Text != "" {
		text += "\n" + r.Highlight.Text
	}
	return text + "\n" + dimStyle.Render(fmt.Sprintf("score %.2f", r.Score))
}
