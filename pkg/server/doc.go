// Package server is the HTTP layer: a chi mux wiring the response cache,
// the page renderer, static asset serving, gzip compression, Prometheus
// metrics and OpenTelemetry tracing, plus sitemap.txt and robots.txt over
// the discovered routes.
//
// The request flow for a page is: cache lookup (GET without query only) →
// page render on miss → cache store → response. Render misconfigurations
// surface as a generic 500 page; unknown routes as the renderer's fixed 404
// document.
package server
