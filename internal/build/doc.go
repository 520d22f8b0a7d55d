// Package build produces a static export of a project: every discovered
// route rendered with an empty context, written as <route>/index.html,
// alongside copied assets, sitemap.txt and robots.txt. The export directory
// is what `zyte deploy` uploads.
package build
