package log

import "context"

// StructuredLogger logs recurring report events with a fixed field layout.
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	if logger == nil {
		logger = Discard()
	}
	return &StructuredLogger{
		logger: logger,
	}
}

// LogRecordSkipped warns about a record an aggregator could not use.
func (sl *StructuredLogger) LogRecordSkipped(ctx context.Context, report string, index int, err error) {
	fields := NewFields().
		WithReport(report, "").
		WithRecord(index).
		WithError(err).
		WithOperation(OpAggregate)

	sl.logger.WarnContext(ctx, "Record skipped", fields.ToSlice()...)
}

// LogReportWritten logs a report persisted to path.
func (sl *StructuredLogger) LogReportWritten(ctx context.Context, report, path string) {
	fields := NewFields().
		WithReport(report, "").
		WithOperation(OpWrite)
	fields[FieldOutputPath] = path

	sl.logger.InfoContext(ctx, "Report written", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
