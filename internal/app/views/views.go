package views

import (
	"embed"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names rendered by the controllers
const (
	IndexTemplate         = "index.html"
	CatalogTemplate       = "course_catalog.html"
	CourseDetailsTemplate = "course_details.html"
	AddCourseTemplate     = "add_course.html"
	ErrorTemplate         = "error.html"
)

// funcs are available to every page. Course codes are user input, so they
// must be path-escaped before going into a URL path segment.
var funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// Load parses the embedded page templates
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// MustLoad is like Load but panics on a broken template
func MustLoad() *template.Template {
	return template.Must(Load())
}
