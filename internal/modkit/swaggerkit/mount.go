package swaggerkit

import (
	"net/http"

	phttp "truthlens/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsBase = "/api/docs"

// Mount serves the UI at /api/docs/ and the document at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsBase+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsBase+"/doc.json", serveDocJSON())
	r.Handle(docsBase+"/*", httpSwagger.Handler(
		httpSwagger.URL(docsBase+"/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))
}
