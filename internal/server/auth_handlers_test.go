package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func signupUser(t *testing.T, app testApp, username, email, password string) (token string) {
	t.Helper()
	resp, err := app.Test(postJSON(t, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

type testApp interface {
	Test(req *http.Request, msTimeout ...int) (*http.Response, error)
}

func TestSignup(t *testing.T) {
	_, app, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "fresh_user",
				"email":    "fresh@example.com",
				"password": "Password123!",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"username": "nopassword",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "weakling",
				"email":    "weak@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad email",
			body: map[string]string{
				"username": "bademail",
				"email":    "not-an-email",
				"password": "Password123!",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "second_user",
				"email":    "fresh@example.com",
				"password": "Password123!",
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(postJSON(t, "/api/auth/signup", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	_, app, _ := newTestServer(t)
	signupUser(t, app, "login_user", "login@example.com", "Password123!")

	t.Run("Success", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "login@example.com",
			"password": "Password123!",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "login@example.com",
			"password": "WrongPassword1!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown email", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "Password123!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
