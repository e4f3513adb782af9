package errorx

import "fmt"

// Error carries a stable code and a user-safe message. Internal detail
// must go to the logger, never into Message.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}
