package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui"
	v3 "github.com/swaggest/swgui/v3"

	"apidocs/internal/apidoc"
)

const defaultDocsTitle = "API documentation"

// Mount registers the Swagger UI under prefix together with the handlers
// that hand the loaded document to it. Rendering is entirely up to the UI.
//
//	GET <prefix>               301 to <prefix>/
//	GET <prefix>/              UI page, titled with info.title
//	GET <prefix>/openapi.json  document as JSON, fetched by the UI
//	GET <prefix>/openapi.yaml  document source bytes
//	GET <prefix>/*             UI static assets
func Mount(r chi.Router, prefix string, doc *apidoc.Document) {
	title := doc.Title()
	if title == "" {
		title = defaultDocsTitle
	}

	ui := v3.NewHandlerWithConfig(swgui.Config{
		Title:       title,
		SwaggerJSON: prefix + "/openapi.json",
		BasePath:    prefix + "/",
	})

	docJSON := doc.JSON()
	docYAML := doc.YAML()

	r.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
		target := prefix + "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
	r.Get(prefix+"/openapi.json", serveDocument("application/json; charset=utf-8", docJSON))
	r.Get(prefix+"/openapi.yaml", serveDocument("application/yaml; charset=utf-8", docYAML))
	r.Handle(prefix+"/*", ui)
}

func serveDocument(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	}
}
