package httpapi

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Title    string
	Endpoint string
}

// serveIndex renders the embedded chat page.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, indexData{Title: "Local AI Chatbot", Endpoint: "/chatbot"}); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to render page")
	}
}
