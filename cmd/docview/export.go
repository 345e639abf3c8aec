package main

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/etree"
	"github.com/fwojciec/docview/fs"
	"github.com/fwojciec/docview/goldmark"
	"github.com/fwojciec/docview/goquery"
	"github.com/fwojciec/docview/viewer"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-CN" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style id="hljs-light-theme"{{if eq .Theme "dark"}} media="not all"{{end}}>{{.LightCSS}}</style>
<style id="hljs-dark-theme"{{if ne .Theme "dark"}} media="not all"{{end}}>{{.DarkCSS}}</style>
<style>
body { margin: 0; display: flex; font-family: sans-serif; }
#sidebar { width: 280px; padding: 1rem; }
#sidebar ul { list-style: none; padding-left: 0; }
.folder-name { cursor: pointer; }
#content { flex: 1; padding: 1rem 2rem; max-width: {{.MaxWidth}}px; }
[data-theme="dark"] body { background: #0d1117; color: #c9d1d9; }
</style>
</head>
<body>
<nav id="sidebar">
<h2>{{.SidebarTitle}}</h2>
<button id="theme-toggle" type="button">{{.ThemeIcon}}</button>
{{.Sidebar}}
</nav>
<main id="content">
{{.Content}}
</main>
<script>
document.querySelectorAll('.folder-name').forEach(function (name) {
  name.addEventListener('click', function () {
    var folder = name.parentElement;
    var children = document.querySelector('ul[data-parent="' + folder.dataset.folderId + '"]');
    if (!children) return;
    var collapsed = folder.dataset.state === 'collapsed';
    folder.dataset.state = collapsed ? 'expanded' : 'collapsed';
    children.style.display = collapsed ? 'block' : 'none';
    name.querySelector('.folder-arrow').textContent = collapsed ? '▼' : '▶';
  });
});
document.getElementById('theme-toggle').addEventListener('click', function (e) {
  var root = document.documentElement;
  var dark = root.dataset.theme !== 'dark';
  root.dataset.theme = dark ? 'dark' : 'light';
  document.getElementById('hljs-light-theme').media = dark ? 'not all' : 'all';
  document.getElementById('hljs-dark-theme').media = dark ? 'all' : 'not all';
  e.target.textContent = dark ? '☾' : '☀';
});
</script>
</body>
</html>
`))

type page struct {
	Title        string
	SidebarTitle string
	Theme        string
	ThemeIcon    string
	MaxWidth     int
	LightCSS     template.CSS
	DarkCSS      template.CSS
	Sidebar      template.HTML
	Content      template.HTML
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	s, err := deps.openSession(c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	// A failed load is exported as its inline message.
	if err := s.app.Start(deps.Ctx, c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", docview.ErrorMessage(err))
	}

	data, err := renderPage(s.app.State())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		_, err = deps.Stdout.Write(data)
		return err
	}
	if err := fs.WriteFileAtomic(c.Output, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Exported %s to %s\n", s.app.State().Path, c.Output)
	return nil
}

func renderPage(state viewer.State) ([]byte, error) {
	sidebar, err := etree.MarshalSidebar(state.Sidebar)
	if err != nil {
		return nil, err
	}
	light, err := goldmark.HighlightCSS(viewer.ThemeLight.HighlightStyle())
	if err != nil {
		return nil, fmt.Errorf("highlight css: %w", err)
	}
	dark, err := goldmark.HighlightCSS(viewer.ThemeDark.HighlightStyle())
	if err != nil {
		return nil, fmt.Errorf("highlight css: %w", err)
	}

	title := state.SiteTitle
	if h1, err := goquery.Title(state.HTML); err == nil && h1 != "" {
		title = h1 + " - " + state.SiteTitle
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, page{
		Title:        title,
		SidebarTitle: state.SidebarTitle,
		Theme:        string(state.Theme),
		ThemeIcon:    state.ThemeIcon,
		MaxWidth:     state.MaxContentWidth,
		LightCSS:     template.CSS(light),
		DarkCSS:      template.CSS(dark),
		Sidebar:      template.HTML(sidebar),
		Content:      template.HTML(state.HTML),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
