package dashboard

import (
	"html/template"
	"io"
	"time"
)

// PlotlyURL is the Plotly.js bundle the page loads figures with
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var funcMap = template.FuncMap{
	// styles are declared in Go, never taken from requests
	"css": func(s string) template.CSS { return template.CSS(s) },
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(funcMap).Parse(pageHTML))

// Page is the data the dashboard template renders
type Page struct {
	Title     string
	PlotlyURL string
	Root      *Component
	Initial   []Update
	SourceURL string
	BuiltAt   time.Time
}

// RenderPage writes the dashboard HTML
func RenderPage(w io.Writer, page Page) error {
	if page.PlotlyURL == "" {
		page.PlotlyURL = PlotlyURL
	}
	return pageTemplate.Execute(w, page)
}

const pageHTML = `{{define "component" -}}
{{- if eq .Kind "div" -}}
<div{{with .ID}} id="{{.}}"{{end}}{{with .Style}} style="{{css .}}"{{end}}>
{{range .Children}}{{template "component" .}}{{end -}}
</div>
{{else if eq .Kind "h1" -}}
<h1{{with .Style}} style="{{css .}}"{{end}}>{{.Text}}</h1>
{{else if eq .Kind "h3" -}}
<h3>{{.Text}}</h3>
{{else if eq .Kind "dropdown" -}}
<select id="{{.ID}}" data-input="{{.ID}}">
<option value="">Select...</option>
{{range .Options}}<option value="{{.Value}}">{{.Label}}</option>
{{end -}}
</select>
{{else if eq .Kind "graph" -}}
<div id="{{.ID}}" class="graph"></div>
{{else if eq .Kind "textarea" -}}
<textarea id="{{.ID}}"{{if .ReadOnly}} readonly{{end}}{{with .Style}} style="{{css .}}"{{end}}></textarea>
{{end -}}
{{end -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="{{.PlotlyURL}}"></script>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 1rem; }
select, textarea { width: 100%; padding: .25rem; font-size: 1rem; }
.graph { width: 100%; min-height: 450px; }
footer { color: #6c757d; font-size: .75rem; margin-top: 2rem; }
</style>
</head>
<body>
{{template "component" .Root}}
<footer>Source: <a href="{{.SourceURL}}">{{.SourceURL}}</a>, loaded {{fmtTime .BuiltAt}}</footer>
<script>
(function () {
  var initial = {{.Initial}};
  var socket = null;

  function apply(u) {
    if (u.error) {
      console.error(u.input + ": " + u.error);
      return;
    }
    if (u.property === "figure") {
      Plotly.react(u.output, u.value.data, u.value.layout, {responsive: true});
    } else {
      document.getElementById(u.output).value = u.value;
    }
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    socket = new WebSocket(proto + "//" + location.host + "/ws");
    socket.onmessage = function (ev) { apply(JSON.parse(ev.data)); };
    socket.onclose = function () { socket = null; };
  }

  function send(input, value) {
    var msg = {input: input, value: value === "" ? null : value};
    if (socket && socket.readyState === WebSocket.OPEN) {
      socket.send(JSON.stringify(msg));
      return;
    }
    fetch("/_dash-update", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(msg)
    }).then(function (r) { return r.json(); }).then(apply);
  }

  initial.forEach(apply);
  document.querySelectorAll("select[data-input]").forEach(function (el) {
    el.addEventListener("change", function () { send(el.id, el.value); });
  });
  connect();
})();
</script>
</body>
</html>
`
