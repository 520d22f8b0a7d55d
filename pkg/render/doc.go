// Package render drives the page rendering pipeline: request path → route
// entry → component module → template with evaluated {{ ... }} expressions
// → final HTML.
//
// Failure handling is split by blast radius. A single bad expression is
// absorbed and emitted as its literal text so the rest of the page still
// renders. A missing template or unloadable component invalidates the whole
// page and propagates to the caller, which turns it into an error response.
// An unknown route is neither: it renders the fixed 404 document.
package render
