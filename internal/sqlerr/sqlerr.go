// Package sqlerr handles database driver errors.
//
// It parses PostgreSQL error codes from the driver and converts
// them into user-friendly errors (e.g., a "foreign key violation"
// on an expense becomes a 400 "The referenced Category does not exist").
package sqlerr

// Code is a driver-independent classification of a SQLSTATE.
type Code string

const (
	Other                  Code = "other"
	NumericValueOutOfRange Code = "numeric_value_out_of_range"
	NotNullViolation       Code = "not_null_violation"
	ForeignKeyViolation    Code = "foreign_key_violation"
	UniqueViolation        Code = "unique_violation"
	CheckViolation         Code = "check_violation"
	ExclusionViolation     Code = "exclusion_violation"
	TransactionFailed      Code = "transaction_failed"
	DeadlockDetected       Code = "deadlock_detected"
	TooManyConnections     Code = "too_many_connections"
)

// MapCode maps a PostgreSQL SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "22003":
		return NumericValueOutOfRange
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "25P02":
		return TransactionFailed
	case "40P01":
		return DeadlockDetected
	case "53300":
		return TooManyConnections
	default:
		return Other
	}
}

// Severity mirrors the severity field reported by PostgreSQL.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the raw severity string; unknown values are treated as ERROR.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is the normalized form of a driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (pe *Error) Error() string {
	return string(pe.Severity) + ": " + pe.Message + " (Code " + string(pe.Code) + ": SQLSTATE " + pe.DatabaseCode + ")"
}

// Unwrap returns the original driver error.
func (pe *Error) Unwrap() error {
	return pe.driverErr
}
