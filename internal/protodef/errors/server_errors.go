package errors

import "encoding/json"

// ServerError internal error and abnormal-result definitions.
type ServerError struct {
	Code    int    `json:"code"`
	Summary string `json:"summary"`
}

func (e *ServerError) Error() string {
	buf, _ := json.Marshal(e)
	return string(buf)
}

// Error codes are 5-digit numbers. 1xxxx covers request handling and
// database access.
const (
	ServerErrorNotLoggedIn       = 10001
	ServerErrorBadToken          = 10002
	ServerErrorNoPermission      = 10003
	ServerErrorUserNotFound      = 10004
	ServerErrorInterviewNotFound = 10005
	ServerErrorRoomNotOpen       = 10006
	ServerErrorRoomFull          = 10007
	ServerErrorValidation        = 10008
	ServerErrorMongoOpFail       = 11000
)

func New(code int, summary string) *ServerError {
	return &ServerError{Code: code, Summary: summary}
}

// Is reports whether err is a *ServerError carrying the given code.
func Is(err error, code int) bool {
	serverErr, ok := err.(*ServerError)
	return ok && serverErr.Code == code
}
