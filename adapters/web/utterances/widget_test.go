package utterances

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/khoahotran/notion-blog/internal/domain/comments"
)

func countChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func TestWidget_NoInjectionBeforeMount(t *testing.T) {
	container := NewContainer()
	w := NewWidget(comments.Config{GitHub: "octocat"}, container, true)

	assert.Equal(t, 0, countChildren(container))
	_, ok := ScriptAttr(container, "theme")
	assert.False(t, ok)

	w.SetDarkMode(false)
	assert.Equal(t, 0, countChildren(container))
}

func TestWidget_MountInjectsScript(t *testing.T) {
	container := NewContainer()
	w := NewWidget(comments.Config{GitHub: "octocat"}, container, false)

	w.Mount()

	require.Equal(t, 1, countChildren(container))
	script := container.FirstChild
	assert.Equal(t, "script", script.Data)

	want := map[string]string{
		"src":         "https://utteranc.es/client.js",
		"repo":        "octocat/DocXninjaBlog",
		"issue-term":  "pathname",
		"label":       "comments",
		"theme":       "github-light",
		"crossorigin": "anonymous",
	}
	for k, v := range want {
		got, ok := ScriptAttr(container, k)
		assert.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}
	_, async := ScriptAttr(container, "async")
	assert.True(t, async)
}

func TestWidget_DarkModeToggleReinjects(t *testing.T) {
	container := NewContainer()
	w := NewWidget(comments.Config{}, container, false)
	w.Mount()

	theme, _ := ScriptAttr(container, "theme")
	assert.Equal(t, "github-light", theme)

	w.SetDarkMode(true)

	assert.Equal(t, 1, countChildren(container), "container must be cleared before reinjection")
	theme, _ = ScriptAttr(container, "theme")
	assert.Equal(t, "github-dark", theme)
	repo, _ := ScriptAttr(container, "repo")
	assert.Equal(t, "docXNinja/DocXninjaBlog", repo)

	w.SetDarkMode(false)
	assert.Equal(t, 1, countChildren(container))
	theme, _ = ScriptAttr(container, "theme")
	assert.Equal(t, "github-light", theme)
}

func TestWidget_UnmountClears(t *testing.T) {
	container := NewContainer()
	w := NewWidget(comments.Config{}, container, true)
	w.Mount()
	require.Equal(t, 1, countChildren(container))

	w.Unmount()

	assert.Equal(t, 0, countChildren(container))
	assert.False(t, w.Mounted())
}

func TestWidget_NilContainerIsNoop(t *testing.T) {
	w := NewWidget(comments.Config{}, nil, false)

	assert.NotPanics(t, func() {
		w.Mount()
		w.SetDarkMode(true)
		w.Unmount()
	})
	out, err := w.HTML()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestWidget_HTML(t *testing.T) {
	w := NewWidget(comments.Config{GitHub: "octocat", RepoName: "blog"}, NewContainer(), true)
	w.Mount()

	out, err := w.HTML()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<div class="utterances-comments"><script`))
	assert.Contains(t, out, `repo="octocat/blog"`)
	assert.Contains(t, out, `theme="github-dark"`)
	assert.True(t, strings.HasSuffix(out, `</script></div>`))
}
