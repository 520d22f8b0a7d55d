// Package router discovers routes from a directory tree.
//
// Every subdirectory of the routes directory that contains a component
// module becomes a route; the directory's relative path is the URL path.
// A route directory holds one primary .js component, an optional .html
// template and optional .css stylesheet with the same base name, and any
// number of .client.js companions that are excluded from discovery:
//
//	app/routes/
//	  about/
//	    page.js          → route "about"
//	    page.html
//	    page.css
//	    page.client.js   (ignored by discovery)
//	  blog/
//	    post/
//	      page.js        → route "blog/post"
//	      page.html
//
// The root path is not discovered here; the page renderer special-cases it
// to the app-level component.
package router
