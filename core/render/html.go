package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/recipecard/core"
)

var cardTemplates = template.Must(template.New("page").Parse(`
{{- define "card" -}}
<article class="card">
<header>
<h1>{{.Title}}</h1>
{{- if .Yield}}
<p class="yield"><em>Yields: {{.Yield}}</em></p>
{{- end}}
{{- if .Times}}
<p class="times">{{range $i, $t := .Times}}{{if $i}} · {{end}}<strong>{{$t.Label}}: {{$t.Value}}</strong>{{end}}</p>
{{- end}}
</header>
<section class="ingredients">
<h2>Ingredients</h2>
<ul>
{{- range .Ingredients}}
<li>{{.}}</li>
{{- end}}
</ul>
</section>
<section class="instructions">
<h2>Instructions</h2>
<ol>
{{- range .Instructions}}
<li>{{.}}</li>
{{- end}}
</ol>
</section>
{{- if .Host}}
<footer>Source: {{.Host}}</footer>
{{- end}}
</article>
{{- end -}}
<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: Georgia, serif; color: #000; background: #f4f4f5; }
.card { box-sizing: border-box; width: 6in; min-height: 4in; margin: 1rem auto; padding: 0.3in; background: #fff; box-shadow: 0 10px 30px rgba(0,0,0,.25); }
header { border-bottom: 2px solid #000; padding-bottom: .5rem; margin-bottom: .5rem; }
h1 { font-size: 1.4rem; text-transform: uppercase; letter-spacing: .05em; margin: 0; }
h2 { font-size: .8rem; text-transform: uppercase; border-bottom: 1px solid #ccc; margin: .5rem 0 .25rem; }
.yield { font-size: .8rem; margin: .25rem 0 0; }
.times { font-size: .7rem; text-transform: uppercase; margin: .25rem 0 0; }
li { font-size: .8rem; line-height: 1.3; }
footer { margin-top: 1rem; padding-top: .5rem; border-top: 1px solid #eee; font-size: .6rem; text-align: center; color: #555; }
@page { size: 6in 4in; margin: 0; }
@media print {
  body { background: none; }
  .card { box-shadow: none; margin: 0; }
  .instructions { break-before: page; }
}
</style>
</head>
<body>
{{template "card" .}}
</body>
</html>
`))

// HTMLRenderer produces a self-contained printable HTML card.
// Printing it yields ingredients on the front and instructions on the back.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render executes the card page template.
func (r *HTMLRenderer) Render(recipe core.Recipe) ([]byte, error) {
	return executeCard("page", recipe)
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// ContentType returns the MIME type for HTML output.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func executeCard(name string, recipe core.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	if err := cardTemplates.ExecuteTemplate(&buf, name, newCard(recipe)); err != nil {
		return nil, fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}
