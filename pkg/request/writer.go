package request

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

// WriteJSON writes v as the JSON body of a response with the given status.
func WriteJSON(l *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		l.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
	}
}

// ClientWriter records the status code written to a response.
type ClientWriter struct {
	http.ResponseWriter
	statusCode int
}

// NewClientWriter wraps w. The status code defaults to 200.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (c *ClientWriter) WriteHeader(code int) {
	c.statusCode = code
	c.ResponseWriter.WriteHeader(code)
}

// StatusCode returns the status code written so far.
func (c *ClientWriter) StatusCode() int {
	return c.statusCode
}
