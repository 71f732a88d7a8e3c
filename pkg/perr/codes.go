// Package perr translates the native perseid library's error stack into Go
// errors. Every native call made by the wrapper layer goes through Call or
// Call0, which checkpoint the stack, invoke the call, and drain any frames
// the call appended into a typed *Error.
package perr

// Code identifies one native error condition. Each code maps to exactly one
// error kind; the set is closed and mirrors the native library's error enum.
type Code int

// Native error codes.
const (
	CodeNone Code = iota
	CodeNullInput
	CodeIllegalInput
	CodeIllegalOutput
	CodeFileNotFound
	CodeTypeMismatch
	CodeInvalidType
	CodeDataNotFound
	CodeAccessOutOfRange
	CodeUnsupportedMode
	CodeDivisionByZero
	CodeNoWCS
	CodeUnspecified
)

// codeNames maps each known code to its display name. A code absent from
// this table is not a library error; translation must not guess at it.
var codeNames = map[Code]string{
	CodeNone:             "none",
	CodeNullInput:        "null input",
	CodeIllegalInput:     "illegal input",
	CodeIllegalOutput:    "illegal output",
	CodeFileNotFound:     "file not found",
	CodeTypeMismatch:     "type mismatch",
	CodeInvalidType:      "invalid type",
	CodeDataNotFound:     "data not found",
	CodeAccessOutOfRange: "access out of range",
	CodeUnsupportedMode:  "unsupported mode",
	CodeDivisionByZero:   "division by zero",
	CodeNoWCS:            "no wcs",
	CodeUnspecified:      "unspecified",
}

// String returns the display name of the code, or "unknown" for values
// outside the native enum.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// known reports whether the code is part of the native enum and denotes a
// failure (CodeNone marks success and never appears in a frame).
func (c Code) known() bool {
	_, ok := codeNames[c]
	return ok && c != CodeNone
}
