package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avicente/recipebook-be/internal/database"
	"github.com/avicente/recipebook-be/internal/services"
	"github.com/avicente/recipebook-be/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, false)
	router := NewRouter(sessions, services.NewUserService(db), services.NewRecipeService(db), "http://localhost:3000")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a client with its own cookie jar, i.e. its own session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func signupAndLogin(t *testing.T, client *http.Client, baseURL, username string) {
	t.Helper()
	status, _ := doJSON(t, client, http.MethodPost, baseURL+"/signup", map[string]any{
		"username": username, "password": "pw123", "bio": "hi", "imageUrl": "http://x",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, client, http.MethodPost, baseURL+"/login", map[string]any{
		"username": username, "password": "pw123",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestSignupLoginRecipeFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodPost, srv.URL+"/signup", map[string]any{
		"username": "al", "password": "pw123", "bio": "hi", "imageUrl": "http://x",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"message":"User created successfully"}`, string(body))

	status, body = doJSON(t, client, http.MethodPost, srv.URL+"/login", map[string]any{
		"username": "al", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, status)
	var loginRes map[string]string
	require.NoError(t, json.Unmarshal(body, &loginRes))
	assert.Equal(t, "Login successful", loginRes["message"])
	assert.Equal(t, "al", loginRes["username"])

	status, body = doJSON(t, client, http.MethodGet, srv.URL+"/recipes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	instructions := strings.Repeat("x", 60)
	status, body = doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "Tortilla", "instructions": instructions, "minutesToComplete": 25,
	})
	require.Equal(t, http.StatusCreated, status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Tortilla", created["title"])
	assert.Equal(t, instructions, created["instructions"])
	assert.EqualValues(t, 25, created["minutesToComplete"])

	status, body = doJSON(t, client, http.MethodGet, srv.URL+"/recipes", nil)
	require.Equal(t, http.StatusOK, status)
	var recipes []map[string]any
	require.NoError(t, json.Unmarshal(body, &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tortilla", recipes[0]["title"])
}

func TestCheckSession(t *testing.T) {
	srv := newTestServer(t)

	// Unauthenticated.
	status, body := doJSON(t, newClient(t), http.MethodGet, srv.URL+"/check_session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, string(body))

	// Authenticated.
	client := newClient(t)
	signupAndLogin(t, client, srv.URL, "al")

	status, body = doJSON(t, client, http.MethodGet, srv.URL+"/check_session", nil)
	require.Equal(t, http.StatusOK, status)
	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "al", user["username"])
	assert.Equal(t, "hi", user["bio"])
	assert.Equal(t, "http://x", user["imageUrl"])
	assert.NotContains(t, string(body), "password")
}

func TestLoginFailures(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/signup", map[string]any{
		"username": "al", "password": "pw123", "bio": "hi", "imageUrl": "http://x",
	})
	require.Equal(t, http.StatusCreated, status)

	// Missing fields.
	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/login", map[string]any{"username": "al"})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown username and wrong password must be indistinguishable.
	unknownStatus, unknownBody := doJSON(t, client, http.MethodPost, srv.URL+"/login", map[string]any{
		"username": "nobody", "password": "pw123",
	})
	wrongStatus, wrongBody := doJSON(t, client, http.MethodPost, srv.URL+"/login", map[string]any{
		"username": "al", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, string(unknownBody), string(wrongBody))
}

func TestLogoutDestroysSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	signupAndLogin(t, client, srv.URL, "al")

	status, body := doJSON(t, client, http.MethodDelete, srv.URL+"/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, string(body))

	// The prior session no longer authenticates anything.
	status, _ = doJSON(t, client, http.MethodGet, srv.URL+"/check_session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing username", map[string]any{"password": "pw123", "bio": "hi", "imageUrl": "http://x"}},
		{"missing password", map[string]any{"username": "al", "bio": "hi", "imageUrl": "http://x"}},
		{"missing bio", map[string]any{"username": "al", "password": "pw123", "imageUrl": "http://x"}},
		{"missing image url", map[string]any{"username": "al", "password": "pw123", "bio": "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/signup", tt.payload)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	payload := map[string]any{"username": "al", "password": "pw123", "bio": "hi", "imageUrl": "http://x"}
	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/signup", payload)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/signup", payload)
	assert.Equal(t, http.StatusConflict, status)

	// The first account still works.
	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/login", map[string]any{
		"username": "al", "password": "pw123",
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestRecipeValidation(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	signupAndLogin(t, client, srv.URL, "al")

	// 49-character instructions fail, 50 succeed.
	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "Short", "instructions": strings.Repeat("a", 49), "minutesToComplete": 10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "Enough", "instructions": strings.Repeat("a", 50), "minutesToComplete": 10,
	})
	assert.Equal(t, http.StatusCreated, status)

	// Absent fields are rejected before any write.
	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "No minutes", "instructions": strings.Repeat("a", 60),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "", "instructions": strings.Repeat("a", 60), "minutesToComplete": 10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRecipesRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodGet, srv.URL+"/recipes", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, string(body))

	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "Nope", "instructions": strings.Repeat("a", 60), "minutesToComplete": 5,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRecipesAreOwnerScoped(t *testing.T) {
	srv := newTestServer(t)

	alice := newClient(t)
	signupAndLogin(t, alice, srv.URL, "alice")
	bob := newClient(t)
	signupAndLogin(t, bob, srv.URL, "bob")

	status, _ := doJSON(t, alice, http.MethodPost, srv.URL+"/recipes", map[string]any{
		"title": "Alice soup", "instructions": strings.Repeat("a", 60), "minutesToComplete": 30,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, bob, http.MethodGet, srv.URL+"/recipes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = doJSON(t, alice, http.MethodGet, srv.URL+"/recipes", nil)
	require.Equal(t, http.StatusOK, status)
	var recipes []map[string]any
	require.NoError(t, json.Unmarshal(body, &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Alice soup", recipes[0]["title"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doJSON(t, newClient(t), http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
}
