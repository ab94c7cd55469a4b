package showcase

import (
	"embed"
	"html/template"
	"io"
	"math"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{
			"price": catalog.FormatPrice,
			"stars": stars,
		}).
		ParseFS(templateFS, "templates/page.html"),
)

type pageData struct {
	Page PageInfo
	View session.View
}

func renderPage(w io.Writer, page PageInfo, v session.View) error {
	return pageTmpl.Execute(w, pageData{Page: page, View: v})
}

// stars reports, for each of the five stars, whether it is filled.
func stars(rating float64) []bool {
	filled := int(math.Floor(rating))
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < filled
	}
	return out
}
