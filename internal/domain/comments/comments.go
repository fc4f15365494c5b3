package comments

import (
	"context"
	"fmt"
)

const (
	ScriptSrc       = "https://utteranc.es/client.js"
	IssueTerm       = "pathname"
	Label           = "comments"
	CrossOrigin     = "anonymous"
	ThemeLight      = "github-light"
	ThemeDark       = "github-dark"
	DefaultRepo     = "docXNinja/DocXninjaBlog"
	DefaultRepoName = "DocXninjaBlog"
)

type Config struct {
	// GitHub is the owner login. Empty means the built-in default repository is used.
	GitHub   string
	RepoName string
}

// Repo returns the owner/name pair Utterances stores issues in.
func (c Config) Repo() string {
	if c.GitHub == "" {
		return DefaultRepo
	}
	name := c.RepoName
	if name == "" {
		name = DefaultRepoName
	}
	return fmt.Sprintf("%s/%s", c.GitHub, name)
}

func Theme(darkMode bool) string {
	if darkMode {
		return ThemeDark
	}
	return ThemeLight
}

// IssueCounter looks up how many comments the issue backing a page has.
type IssueCounter interface {
	CountComments(ctx context.Context, repo, term string) (int, error)
}
