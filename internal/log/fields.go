package log

// Common field names for structured logging
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
	FieldReport      = "report"
	FieldReference   = "reference"
	FieldCategory    = "category"
	FieldMonth       = "month"
	FieldRecordIndex = "record_index"
	FieldRecordCount = "record_count"
	FieldMissing     = "missing_field"
	FieldOutputPath  = "output_path"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentEngine  = "engine"
	ComponentSearch  = "search"
	ComponentSource  = "source"
	ComponentSheets  = "sheets"
	ComponentStorage = "storage"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentHTTP    = "http"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpFilter    = "filter"
	OpAggregate = "aggregate"
	OpSearch    = "search"
	OpLoad      = "load"
	OpImport    = "import"
	OpWrite     = "write"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpValidate  = "validate"
	OpParse     = "parse"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithReport adds the report name and its reference point
func (f LogFields) WithReport(report, reference string) LogFields {
	f[FieldReport] = report
	if reference != "" {
		f[FieldReference] = reference
	}
	return f
}

// WithRecord adds the position of the record a message is about
func (f LogFields) WithRecord(index int) LogFields {
	f[FieldRecordIndex] = index
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
