package dashboard

import (
	"html/template"
	"io"

	"github.com/a-bouts/nav-dashboard/constraint"
)

var accents = map[string]string{
	"purple": "#c084fc",
	"red":    "#f87171",
	"green":  "#4ade80",
	"blue":   "#60a5fa",
	"yellow": "#facc15",
}

var funcMap = template.FuncMap{
	"accent": func(color string) template.CSS {
		if a, ok := accents[color]; ok {
			return template.CSS(a)
		}
		return template.CSS("#9ca3af")
	},
}

var page = template.Must(template.New("dashboard").Funcs(funcMap).Parse(pageTmpl))

type Page struct {
	SocketPath string
	Weather    bool
	Controls   []constraint.Control
}

// RenderPage writes the dashboard with the default constraints.
func RenderPage(w io.Writer, socketPath string, weather bool) error {
	return page.Execute(w, Page{
		SocketPath: socketPath,
		Weather:    weather,
		Controls:   constraint.Controls(constraint.Defaults()),
	})
}
