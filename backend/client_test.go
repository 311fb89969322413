package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/campushub/admission-portal/internal/errors"
)

func responseWith(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorFromResponse(t *testing.T) {
	t.Run("detail field", func(t *testing.T) {
		err := errorFromResponse(responseWith(401, `{"detail": "No active account found"}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.StatusCode)
		require.Equal(t, "No active account found", apiErr.Detail)
	})

	t.Run("error field", func(t *testing.T) {
		err := errorFromResponse(responseWith(400, `{"error": "exam is closed"}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "exam is closed", apiErr.Detail)
	})

	t.Run("validation map joins messages in key order", func(t *testing.T) {
		body := `{"username": ["already taken"], "email": ["invalid address", "domain blocked"]}`
		err := errorFromResponse(responseWith(400, body))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "invalid address, domain blocked, already taken", apiErr.Detail)
	})

	t.Run("non-JSON body keeps the status with no detail", func(t *testing.T) {
		err := errorFromResponse(responseWith(502, "<html>Bad Gateway</html>"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 502, apiErr.StatusCode)
		require.Empty(t, apiErr.Detail)
	})
}

func TestCheckStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"ok passes", 200, `{}`, nil},
		{"created passes", 201, `{}`, nil},
		{"401 is a dead session", 401, `{"detail": "x"}`, apperrors.ErrSessionExpired},
		{"403 is forbidden", 403, `{"detail": "x"}`, apperrors.ErrForbidden},
		{"404 is not found", 404, `{"detail": "x"}`, apperrors.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkStatus(responseWith(tc.status, tc.body))
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}

	t.Run("other 4xx carries the backend detail", func(t *testing.T) {
		err := checkStatus(responseWith(409, `{"detail": "already applied"}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "already applied", apiErr.Detail)
	})
}

func TestClient_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	srv.Close()

	c := New(srv.URL)
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/auth/profile/", nil, nil)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.ErrorIs(t, err, apperrors.ErrConnection)
}

func TestClient_Refresh(t *testing.T) {
	t.Run("returns the new access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, PathRefresh, r.URL.Path)
			_, _ = w.Write([]byte(`{"access": "new-access"}`))
		}))
		defer srv.Close()

		access, err := New(srv.URL).Refresh(context.Background(), "refresh-1")
		require.NoError(t, err)
		require.Equal(t, "new-access", access)
	})

	t.Run("empty access in the response is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL).Refresh(context.Background(), "refresh-1")
		require.ErrorIs(t, err, apperrors.ErrMalformedResponse)
	})
}
