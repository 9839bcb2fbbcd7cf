package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldAmountCents = "amount_cents"
	FieldRowCount    = "row_count"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentImport  = "import"
)

// Operations defines standard operation names.
const (
	OpCreate = "create"
	OpList   = "list"
	OpDelete = "delete"
	OpImport = "import"
	OpExport = "export"
)
