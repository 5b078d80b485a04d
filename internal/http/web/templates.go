package web

import "html/template"

// LoadTemplates parses the HTML views. Every file holds {{define}} blocks
// named after the page it renders ("listings/index", "users/login", ...).
func LoadTemplates(glob string) *template.Template {
	return template.Must(template.ParseGlob(glob))
}
