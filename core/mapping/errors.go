package mapping

import (
	"errors"
	"fmt"
)

// Error codes for the closed set of parse failures. Message text is part of
// the support contract and is surfaced to callers verbatim.
const (
	ErrCodeUnknownType      = "unknown_type"
	ErrCodeChainedField     = "chained_multi_field"
	ErrCodeMetaType         = "meta_type"
	ErrCodeMetaSize         = "meta_size"
	ErrCodeMetaKeyLength    = "meta_key_length"
	ErrCodeMetaNullValue    = "meta_null_value"
	ErrCodeMetaValueType    = "meta_value_type"
	ErrCodeMetaValueLength  = "meta_value_length"
	ErrCodeMalformedField   = "malformed_field"
	ErrCodeUnknownParameter = "unknown_parameter"
	ErrCodeUnknownAnalyzer  = "unknown_analyzer"
)

// Error is a mapping parse failure. Every instance names the field whose
// construction failed.
type Error struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the mapping error code from err, or "" when err is not a
// mapping error.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
