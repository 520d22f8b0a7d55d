// Package zyte provides the public API for embedding the page server in a
// Go program.
//
// This is the recommended import for most applications:
//
//	import "github.com/zyte-go/zyte"
//
// Usage:
//
//	srv := zyte.New(zyte.Config{
//	    Address:      ":3000",
//	    RoutesDir:    "app/routes",
//	    AppComponent: "app/app.js",
//	    CacheEnabled: true,
//	})
//	http.ListenAndServe(":3000", srv.Handler())
//
// The zyte CLI (cmd/zyte) wraps the same API with zyte.json configuration,
// a dev server with hot reload, static export, and S3 deploy.
package zyte

import (
	"github.com/zyte-go/zyte/pkg/component"
	"github.com/zyte-go/zyte/pkg/data"
	"github.com/zyte-go/zyte/pkg/server"
)

// Config configures an embedded server.
type Config = server.Config

// Server serves rendered pages over HTTP.
type Server = server.Server

// New discovers routes and assembles a server.
func New(cfg Config) *Server {
	return server.New(cfg)
}

// Context carries the per-request namespaces (query, params, headers)
// available to template expressions and component functions.
type Context = component.Context

// Module is a loaded component module: a named set of exports.
type Module = component.Module

// Export is a single module export, either a value or a function.
type Export = component.Export

// Func is a component function callable from template expressions.
type Func = component.Func

// MapModule is an in-memory Module, useful for embedding and tests.
type MapModule = component.MapModule

// ReloadPolicy controls when component modules are re-read from disk.
type ReloadPolicy = component.ReloadPolicy

const (
	// ReloadOnce reads each component module a single time.
	ReloadOnce = component.ReloadOnce

	// ReloadAlways re-reads component modules on every load.
	ReloadAlways = component.ReloadAlways
)

// Value is the tagged union of values flowing through expressions.
type Value = data.Value

// NewValue converts a native Go value into a Value.
func NewValue(v interface{}) Value {
	return data.New(v)
}
