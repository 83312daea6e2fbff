// Package preview renders a static HTML gallery of the configured icon sets
// so generated output can be inspected visually before publishing.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"git.home.luguber.info/inful/iconbuilder/internal/build"
	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/logfields"
	"git.home.luguber.info/inful/iconbuilder/internal/naming"
	"git.home.luguber.info/inful/iconbuilder/internal/svg"
	"github.com/yuin/goldmark"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>iconbuilder preview</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.icon { display: inline-block; width: 8rem; margin: .5rem; text-align: center; vertical-align: top; }
.icon svg { width: 2rem; height: 2rem; fill: currentColor; }
.icon span { display: block; font-size: .7rem; word-break: break-all; }
</style>
</head>
<body>
<h1>Icon preview</h1>
{{range .Sets}}
<h2>{{.Name}} ({{len .Icons}})</h2>
{{.Description}}
<div>
{{range .Icons}}<div class="icon">{{.Markup}}<span>{{.Name}}</span></div>
{{end}}</div>
{{end}}
</body>
</html>
`

type iconView struct {
	Name   string
	Markup template.HTML
}

type setView struct {
	Name        string
	Description template.HTML
	Icons       []iconView
}

// Generate writes preview/index.html under outputDir and returns its path.
// Icons are re-discovered and re-parsed from the configured sources; set
// descriptions are markdown rendered with goldmark.
func Generate(cfg *config.Config, outputDir string) (string, error) {
	md := goldmark.New()
	var sets []setView
	for _, set := range cfg.IconSets {
		view := setView{Name: set.Name}
		if set.Description != "" {
			var buf bytes.Buffer
			if err := md.Convert([]byte(set.Description), &buf); err != nil {
				return "", fmt.Errorf("render description for %s: %w", set.ID, err)
			}
			view.Description = template.HTML(buf.String())
		}

		files, err := build.Discover(set.Files)
		if err != nil {
			return "", fmt.Errorf("discover %s: %w", set.ID, err)
		}
		formatter := set.FormatterFunc()
		seen := make(map[string]struct{}, len(files))
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", file, err)
			}
			tree, err := svg.Parse(string(data))
			if err != nil {
				return "", fmt.Errorf("parse %s: %w", file, err)
			}
			name := naming.Resolve(file, formatter)
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			view.Icons = append(view.Icons, iconView{Name: name, Markup: template.HTML(Markup(tree))})
		}
		sets = append(sets, view)
	}

	tmpl := template.Must(template.New("preview").Parse(pageTemplate))
	var page bytes.Buffer
	if err := tmpl.Execute(&page, struct{ Sets []setView }{sets}); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}

	dir := filepath.Join(outputDir, "preview")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create preview directory: %w", err)
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, page.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	slog.Info("Preview generated", logfields.Path(path), logfields.Count(len(sets)))
	return path, nil
}

// Markup reconstructs inline SVG markup from a parsed tree, mapping
// camel-cased attribute names back to their hyphenated form.
func Markup(n *svg.Node) string {
	var b strings.Builder
	writeMarkup(&b, n, true)
	return b.String()
}

func writeMarkup(b *strings.Builder, n *svg.Node, root bool) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	if root {
		hasViewBox := false
		for _, a := range n.Attr {
			if a.Name == "viewBox" {
				hasViewBox = true
			}
		}
		// The generator strips root width/height, so a fallback viewBox keeps
		// the inline preview scalable.
		if !hasViewBox {
			b.WriteString(` viewBox="0 0 24 24"`)
		}
	}
	for _, a := range n.Attr {
		fmt.Fprintf(b, ` %s="%s"`, hyphenate(a.Name), template.HTMLEscapeString(a.Value))
	}
	if n.Child == nil {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Child {
		writeMarkup(b, c, false)
	}
	b.WriteString("</" + n.Tag + ">")
}

// hyphenate is the inverse of the parser's camel casing: fillOpacity ->
// fill-opacity. viewBox is a real SVG attribute and stays camel-cased.
func hyphenate(name string) string {
	if name == "viewBox" {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Serve serves dir over HTTP until ctx is canceled.
func Serve(ctx context.Context, dir, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(dir)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	slog.Info("Serving preview", slog.String("addr", addr), logfields.Path(dir))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
