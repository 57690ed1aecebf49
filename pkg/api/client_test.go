package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krono-coffee/ordering-client/pkg/session"
)

type recorded struct {
	method      string
	path        string
	body        string
	contentType string
	authz       string
	requestID   string
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			authz:       r.Header.Get("Authorization"),
			requestID:   r.Header.Get("X-Request-ID"),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func storeWith(t *testing.T, token string) session.TokenStore {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	return store
}

func TestUnauthenticatedFailsBeforeNetwork(t *testing.T) {
	server, calls := newTestServer(t, http.StatusOK, `{}`)
	client := NewClient(server.URL, storeWith(t, ""))

	_, err := client.Request(context.Background(), http.MethodGet, "/orders/all", nil, true, EncodingJSON)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, *calls, "no network call may be made without a credential")
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	server, calls := newTestServer(t, http.StatusOK, `[]`)
	client := NewClient(server.URL, storeWith(t, "tok.en.sig"))

	_, err := client.Request(context.Background(), http.MethodGet, "/orders/all", nil, true, EncodingJSON)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "Bearer tok.en.sig", call.authz)
	assert.Equal(t, "/api/v1/orders/all", call.path)
	assert.NotEmpty(t, call.requestID)
}

func TestJSONEncoding(t *testing.T) {
	server, calls := newTestServer(t, http.StatusCreated, `{}`)
	client := NewClient(server.URL, storeWith(t, ""))

	body := map[string]string{"name": "Latte"}
	_, err := client.Request(context.Background(), http.MethodPost, "/auth/register", body, false, EncodingJSON)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "application/json", call.contentType)
	assert.JSONEq(t, `{"name":"Latte"}`, call.body)
	assert.Empty(t, call.authz, "unauthenticated requests carry no bearer header")
}

func TestFormEncoding(t *testing.T) {
	server, calls := newTestServer(t, http.StatusOK, `{"access_token":"x.y.z"}`)
	client := NewClient(server.URL, storeWith(t, ""))

	form := url.Values{}
	form.Set("username", "maria@example.com")
	form.Set("password", "secret")
	raw, err := client.Request(context.Background(), http.MethodPost, "/auth/token", form, false, EncodingForm)
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"x.y.z"}`, string(raw))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "application/x-www-form-urlencoded", call.contentType)
	assert.Equal(t, "password=secret&username=maria%40example.com", call.body)
}

func TestFormEncodingRejectsWrongType(t *testing.T) {
	server, calls := newTestServer(t, http.StatusOK, `{}`)
	client := NewClient(server.URL, storeWith(t, ""))

	_, err := client.Request(context.Background(), http.MethodPost, "/auth/token", map[string]string{}, false, EncodingForm)
	assert.Error(t, err)
	assert.Empty(t, *calls)
}

func TestRemoteErrorUsesDetail(t *testing.T) {
	server, _ := newTestServer(t, http.StatusNotFound, `{"detail":"Order not found"}`)
	client := NewClient(server.URL, storeWith(t, "tok.en.sig"))

	_, err := client.Request(context.Background(), http.MethodPut, "/orders/42/status", nil, true, EncodingJSON)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.Status)
	assert.Equal(t, "Order not found", remote.Message)
}

func TestRemoteErrorFallbackMessage(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, `<html>boom</html>`)
	client := NewClient(server.URL, storeWith(t, ""))

	_, err := client.Request(context.Background(), http.MethodGet, "/menu/menu", nil, false, EncodingJSON)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Equal(t, "the ordering service reported an error", remote.Message)
}

func TestUnreachable(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{}`)
	base := server.URL
	server.Close()

	client := NewClient(base, storeWith(t, ""))
	_, err := client.Request(context.Background(), http.MethodGet, "/menu/menu", nil, false, EncodingJSON)
	var unreachable *UnreachableError
	assert.ErrorAs(t, err, &unreachable)
}
