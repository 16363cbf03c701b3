package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type loginErrorView struct {
	ProviderName string
	LoginURL     string
}

type adminView struct {
	ProviderName string
	Icon         string
	CallbackURL  string
	ClientID     string
	HasSecret    bool
	SettingsURL  string
}
