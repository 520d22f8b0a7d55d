package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Stable error codes used across the framework.
const (
	CodeConfigNotFound    = "E001"
	CodeConfigInvalid     = "E002"
	CodeTemplateMissing   = "E101"
	CodeComponentLoad     = "E102"
	CodeExportNotCallable = "E103"
	CodeRouteScan         = "E201"
	CodeDeployFailed      = "E301"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration (E001-E099)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Project configuration not found",
		Detail:   "No zyte.json was found in this directory or any parent directory.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Project configuration is invalid",
		Detail:   "zyte.json exists but could not be parsed.",
	},

	// ============================================
	// Rendering (E101-E199)
	// ============================================

	CodeTemplateMissing: {
		Category: CategoryRender,
		Message:  "Template file missing for route",
		Detail:   "The route's component module exists, but no .html template was found at the same base path. This is a route misconfiguration, not a 404.",
	},
	CodeComponentLoad: {
		Category: CategoryComponent,
		Message:  "Component module failed to load",
		Detail:   "The route's component module could not be read or evaluated, so the page cannot render.",
	},
	CodeExportNotCallable: {
		Category: CategoryExpression,
		Message:  "Export is not callable",
		Detail:   "A template expression invoked an export that is a plain value, not a function.",
	},

	// ============================================
	// Route discovery (E201-E299)
	// ============================================

	CodeRouteScan: {
		Category: CategoryScan,
		Message:  "Route directory could not be read",
		Detail:   "A subdirectory of the routes tree was unreadable. Discovery continues for its siblings.",
	},

	// ============================================
	// Deploy (E301-E399)
	// ============================================

	CodeDeployFailed: {
		Category: CategoryDeploy,
		Message:  "Deploy upload failed",
		Detail:   "One or more files of the static export could not be uploaded.",
	},
}
