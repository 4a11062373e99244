package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/alice/roles":
			_, _ = w.Write([]byte(`{"login":"alice","roles":["employee","Admin"]}`))
		case "/internal/users/bob/roles":
			_, _ = w.Write([]byte(`{"login":"bob","roles":["employee"]}`))
		case "/internal/users/broken/roles":
			w.WriteHeader(http.StatusInternalServerError)
		case "/internal/users/garbage/roles":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_IsAdmin(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, logger.Discard())
	ctx := context.Background()

	tests := []struct {
		login   string
		want    bool
		wantErr error
	}{
		{"alice", true, nil},
		{"bob", false, nil},
		{"ghost", false, nil},
		{"broken", false, ErrInvalidResponse},
		{"garbage", false, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			got, err := c.IsAdmin(ctx, tt.login)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetRoles_NotFound(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, logger.Discard())

	_, err := c.GetRoles(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.Discard())

	_, err := c.GetRoles(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrInternal)
}
