package errors

// ErrorCode identifies one failure kind. Codes are stable strings so they
// can be matched in logs and tests without depending on message wording.
type ErrorCode string

// Error is an application error carrying a code, an optional message
// override, optional context data and an optional wrapped cause.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	Unwrap() error
}

// Factory builds coded errors. Callers construct one per function and
// attach whichever context the failure has.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
