// Error codes carried in the ErrorResponse envelope. This is the complete
// vocabulary a client can observe, including the code the rate limiters
// emit from middleware.
//
// Clients branch on the code, not the message: a 400 can be a malformed
// request body, a field-rule violation, or a CSV file the importer refused
// outright.
package handlers

const (
	// Mirrors of the HTTP status classes.
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Emitted by the edge and quota limiters alongside a 429.
	ErrCodeRateLimited = "too_many_requests"

	// Intake-specific refinements.
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeImportFailed     = "import_failed"
	ErrCodeExportFailed     = "export_failed"
)
