package customerrors

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrMalformedRequest marks donation form input the pipeline cannot charge.
var ErrMalformedRequest = errors.New("malformed request")

type CustomError struct {
	Message string
	Status  int
	Err     error
}

func New(status int, message string, err error) *CustomError {
	return &CustomError{Message: message, Status: status, Err: err}
}

func (e *CustomError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// ReportError writes the status and the plain text message.
func (e *CustomError) ReportError(w http.ResponseWriter, log *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(e.Status)
	n, err := w.Write([]byte(e.Message))
	if err != nil {
		log.Infof("Problem with writing to responser, written %d bytes with status %d: %s", n, e.Status, err.Error())
	}
}
