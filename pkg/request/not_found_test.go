package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	// Setup logger
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	tests := []struct {
		name    string
		handler http.HandlerFunc
		r       *http.Request
		status  int
		want    string
	}{
		{
			name:    "NotFound",
			handler: NotFoundHandler(l),
			r:       httptest.NewRequest(http.MethodGet, "/", nil),
			status:  http.StatusNotFound,
			want:    "{\"Message\":\"Not found\"}\n",
		},
		{
			name:    "MethodNotAllowed",
			handler: MethodNotAllowedHandler(l),
			r:       httptest.NewRequest(http.MethodPost, "/metrics", nil),
			status:  http.StatusMethodNotAllowed,
			want:    "{\"Message\":\"Method POST not allowed on /metrics\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, tt.r)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestClientWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewClientWriter(rec)
	require.Equal(t, http.StatusOK, cw.StatusCode())

	cw.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, cw.StatusCode())
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNewMessageError(t *testing.T) {
	m := NewMessageError("failed", errors.New("boom"))
	require.Equal(t, "failed", m.Message)
	require.Equal(t, "boom", m.Error)
	require.Equal(t, "id 7", NewMessage("id %d", 7).Message)
}
