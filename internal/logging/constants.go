package logging

// Field names shared by all log entries.
const (
	FieldMessageCode = "message_code"
	FieldMessageType = "message_type"
	FieldSchemaFile  = "schema_file"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldElement     = "element"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldRemoteAddr  = "remote_addr"
	FieldPath        = "path"
)
