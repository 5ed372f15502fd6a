package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/Er-rdhtiwari/ai-app/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// New returns a handler forwarding requests unchanged to the same path on
// upstream. Only the scheme and host of upstream are used.
func New(upstream string) (http.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q: scheme and host are required", upstream)
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(&url.URL{Scheme: target.Scheme, Host: target.Host})
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().
				Err(err).
				Str("upstream", target.Host).
				Str("path", r.URL.Path).
				Msg("Failed to forward request upstream")
			httpext.JsonError(w, "Bad gateway", http.StatusBadGateway)
		},
	}

	log.Info().Str("upstream", target.String()).Msg("Forwarding /api/* upstream")
	return rp, nil
}
