package log

// Field names shared across packages so log lines stay queryable.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldMerchant    = "merchant"
	FieldWindow      = "window"
	FieldEventID     = "event_id"
	FieldSheetsRef   = "sheets_ref"
)

// Component names used with Logger.WithComponent.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentTracker = "tracker"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentExtract = "extract"
)
