// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the handler registered with
// [chi.Mux.MethodNotAllowed]. A known path requested with a method it does
// not serve is answered like an unknown path, with a 404 JSON body, so
// callers cannot discover which routes exist.
//
// The route lookup goes through [chi.Mux.Match], which also descends into
// sub-routers mounted with Route. A request that does match is handed back
// to the router.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		notFound(w, r)
	}
}
