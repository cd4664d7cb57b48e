package api

import (
	"net/http"
	"strings"
)

// FallbackRoute is where ghostwriter requests go when no target can be
// recovered from the path.
const FallbackRoute = "/nb"

// GhostwriterHandler sends the caller back to the path after the
// ghostwriter stem. Once the lab is up, that path resolves normally.
func GhostwriterHandler(prefix string) func(http.ResponseWriter, *http.Request) {
	stem := prefix + "/ghostwriter/"
	return func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, PeelRoute(req.URL.Path, stem), http.StatusFound)
	}
}

// PeelRoute strips everything up to and including stem, keeping the slash
// that ends it.
func PeelRoute(p string, stem string) string {
	pos := strings.Index(p, stem)
	if pos < 0 {
		return FallbackRoute
	}
	redir := p[pos+len(stem)-1:]
	if strings.HasPrefix(redir, stem) {
		return FallbackRoute
	}
	return redir
}
