package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldKind        = "kind"
	FieldAction      = "action"
	FieldRecordID    = "id"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldPeriod      = "period"
	FieldDestination = "destination"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentMenu    = "menu"
	ComponentStorage = "storage"
	ComponentWorker  = "worker"
	ComponentExport  = "export"
	ComponentBackend = "backend"
)
