// Package component defines the contract between routes and the rendering
// pipeline: a loaded component is a lookup-by-name table of exports, where
// each export is either a callable or a plain value.
//
// The evaluator never reflects over arbitrary objects; everything a template
// can reach goes through Module.Lookup. The production implementation loads
// JavaScript modules in an embedded VM (one VM per module), but any Module,
// including a plain MapModule, can back a route.
//
// # Export contract
//
// An exported function is invoked with the parsed positional arguments from
// the template expression, followed by the render context as a final
// argument:
//
//	// page.js
//	exports.greet = function (name, ctx) {
//	    return "Hello, " + name + "!";
//	};
//
// Return values coerce to strings in the rendered output; null and undefined
// coerce to the empty string.
package component
