package logging

// Standardized field names for structured logging.
const (
	FieldDirection  = "direction"
	FieldTemplate   = "template"
	FieldSource     = "source"
	FieldKeyword    = "keyword"
	FieldCategory   = "category"
	FieldStrategy   = "strategy"
	FieldArtifact   = "artifact"
	FieldLabelIndex = "label_index"
	FieldOperation  = "operation"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldWorkers    = "workers"
)
