package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile          = "file_path"
	FieldTransactionID = "transaction_id"
	FieldExpenseID     = "expense_id"
	FieldVendor        = "vendor"
	FieldConfidence    = "confidence"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldCount         = "count"
	FieldDelimiter     = "delimiter"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldRunID         = "run_id"
)
