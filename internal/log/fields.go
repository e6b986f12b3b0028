package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldFile        = "file"
	FieldBank        = "bank"
	FieldDialect     = "dialect"
	FieldRows        = "rows"
	FieldInserted    = "inserted"
	FieldSkipped     = "skipped"
	FieldDropped     = "dropped"
	FieldDescription = "description"
	FieldDocType     = "document_type"
	FieldReference   = "reference"
	FieldError       = "error"
	FieldOperation   = "operation"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentIngest    = "ingest"
	ComponentDialect   = "dialect"
	ComponentStatement = "statement"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
)

// Operations defines standard operation names
const (
	OpIngest   = "ingest"
	OpClassify = "classify"
	OpInsert   = "insert"
	OpExport   = "export"
	OpConsume  = "consume"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
