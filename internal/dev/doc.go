// Package dev provides the development-mode tooling: file watching over the
// routes tree and WebSocket-based browser refresh.
//
// The dev command wires the two together with the server: a change under
// the routes directory rebuilds the route table, clears the response cache,
// invalidates the changed component module, and broadcasts a reload message
// to connected browsers.
//
// # Hot Reload Protocol
//
// The browser connects to /__zyte/reload via WebSocket. Messages are
// JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "css", "file": "..."}    // Triggers CSS-only reload
//	{"type": "error", "error": "..."} // Shows error text
package dev
