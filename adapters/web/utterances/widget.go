// Package utterances embeds the Utterances comments script into an HTML
// container node.
//
// The widget follows the lifecycle of a client-side component: nothing is
// injected until Mount, every dark mode change replaces the injected script,
// and Unmount leaves the container empty.
package utterances

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/khoahotran/notion-blog/internal/domain/comments"
)

type Widget struct {
	cfg       comments.Config
	container *html.Node
	mounted   bool
	darkMode  bool
}

func NewWidget(cfg comments.Config, container *html.Node, darkMode bool) *Widget {
	return &Widget{cfg: cfg, container: container, darkMode: darkMode}
}

// NewContainer returns an empty <div> suitable as a widget container.
func NewContainer() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: "utterances-comments"}},
	}
}

func (w *Widget) Mounted() bool {
	return w.mounted
}

func (w *Widget) Mount() {
	if w.mounted {
		return
	}
	w.mounted = true
	w.inject()
}

// SetDarkMode reinjects the script with the matching theme. Setting the
// current value again does nothing.
func (w *Widget) SetDarkMode(dark bool) {
	if dark == w.darkMode {
		return
	}
	w.darkMode = dark
	w.inject()
}

func (w *Widget) Unmount() {
	if w.container != nil {
		removeChildren(w.container)
	}
	w.mounted = false
}

func (w *Widget) Theme() string {
	return comments.Theme(w.mounted && w.darkMode)
}

func (w *Widget) inject() {
	if w.container == nil || !w.mounted {
		return
	}
	removeChildren(w.container)
	w.container.AppendChild(newScript(w.cfg.Repo(), w.Theme()))
}

// Render writes the container and its current children.
func (w *Widget) Render(out io.Writer) error {
	if w.container == nil {
		return nil
	}
	return html.Render(out, w.container)
}

func (w *Widget) HTML() (string, error) {
	var buf bytes.Buffer
	if err := w.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newScript(repo, theme string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr: []html.Attribute{
			{Key: "src", Val: comments.ScriptSrc},
			{Key: "repo", Val: repo},
			{Key: "issue-term", Val: comments.IssueTerm},
			{Key: "label", Val: comments.Label},
			{Key: "theme", Val: theme},
			{Key: "crossorigin", Val: comments.CrossOrigin},
			{Key: "async", Val: ""},
		},
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// ScriptAttr returns the value of key on the injected script, if any.
func ScriptAttr(container *html.Node, key string) (string, bool) {
	if container == nil {
		return "", false
	}
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Script {
			continue
		}
		for _, a := range c.Attr {
			if a.Key == key {
				return a.Val, true
			}
		}
	}
	return "", false
}
