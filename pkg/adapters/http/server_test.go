package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/roster"
	rosterhttp "github.com/aretw0/roster/pkg/adapters/http"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/idgen"
	"github.com/aretw0/roster/pkg/observability"
	"github.com/aretw0/roster/pkg/persistence/middleware"
	"github.com/aretw0/roster/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	mgr := session.NewManager(memory.NewStore(), session.WithStoreOptions(
		roster.WithIDGenerator(idgen.NewIncrementing(1)),
		roster.WithLifecycleHooks(metrics.Hooks()),
	))

	handler, err := rosterhttp.NewHandler(mgr, rosterhttp.WithMetrics(metrics, reg))
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, mgr
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeState(t *testing.T, data []byte) *domain.State {
	t.Helper()
	var state domain.State
	require.NoError(t, json.Unmarshal(data, &state), string(data))
	return &state
}

func TestServer_AddFlow(t *testing.T) {
	srv, _ := newServer(t)

	resp, data := post(t, srv, "/sessions/s1/actions", `{"type":"add_button_tapped"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	_, editing := decodeState(t, data).Editor()
	assert.True(t, editing)

	post(t, srv, "/sessions/s1/actions", `{"type":"add_contact.set_name","name":"Blob"}`)
	resp, data = post(t, srv, "/sessions/s1/actions", `{"type":"add_contact.save_tapped"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	state := decodeState(t, data)
	assert.Nil(t, state.Destination)
	assert.Equal(t, []domain.Contact{{ID: "00000000-0000-0000-0000-000000000001", Name: "Blob"}}, state.Contacts.All())

	get, err := http.Get(srv.URL + "/sessions/s1/state")
	require.NoError(t, err)
	defer get.Body.Close()
	body, _ := io.ReadAll(get.Body)
	assert.Equal(t, http.StatusOK, get.StatusCode)
	assert.Equal(t, 1, decodeState(t, body).Contacts.Len())
}

func TestServer_GetStateShowsLiveState(t *testing.T) {
	pii, err := middleware.NewPIIMiddleware([]string{middleware.EmailPattern})
	require.NoError(t, err)
	handler, err := rosterhttp.NewHandler(session.NewManager(middleware.Chain(memory.NewStore(), pii)))
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	post(t, srv, "/sessions/s1/actions", `{"type":"add_button_tapped"}`)
	_, data := post(t, srv, "/sessions/s1/actions", `{"type":"add_contact.set_name","name":"a@b.io"}`)
	ed, ok := decodeState(t, data).Editor()
	require.True(t, ok)
	assert.Equal(t, "a@b.io", ed.Contact.Name)

	resp, err := http.Get(srv.URL + "/sessions/s1/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	ed, ok = decodeState(t, body).Editor()
	require.True(t, ok)
	assert.Equal(t, "a@b.io", ed.Contact.Name, "GET matches what POST returned, not the masked copy")
}

func TestServer_StaleConfirmReturnsUnchangedState(t *testing.T) {
	srv, mgr := newServer(t)
	require.NoError(t, mgr.Save(context.Background(), "s1", domain.NewState(domain.Contact{ID: "1", Name: "Blob"})))

	resp, data := post(t, srv, "/sessions/s1/actions", `{"type":"confirm_deletion.confirm_deletion","id":"1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeState(t, data).Contacts.Len())
}

func TestServer_RejectsBadActions(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"not json", "/sessions/s1/actions", `{`},
		{"unknown type", "/sessions/s1/actions", `{"type":"reorder"}`},
		{"missing id", "/sessions/s1/actions", `{"type":"delete_button_tapped"}`},
		{"wrong id type", "/sessions/s1/actions", `{"type":"delete_button_tapped","id":7}`},
		{"bad session id", "/sessions/a%20b/actions", `{"type":"dismiss"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, srv, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))
		})
	}
}

func TestServer_MissingFieldIsReported(t *testing.T) {
	srv, _ := newServer(t)

	// Passes the OpenAPI schema (id is optional there) but not the action schema.
	resp, data := post(t, srv, "/sessions/s1/actions", `{"type":"confirm_deletion.confirm_deletion"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.Len(t, body.Fields, 1)
	assert.Contains(t, body.Fields[0], `"id"`)
}

func TestServer_UnknownSession(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/sessions/nope/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ListAndDelete(t *testing.T) {
	srv, _ := newServer(t)
	post(t, srv, "/sessions/a/actions", `{"type":"dismiss"}`)
	post(t, srv, "/sessions/b/actions", `{"type":"dismiss"}`)

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	resp.Body.Close()
	assert.Equal(t, []string{"a", "b"}, ids)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/a", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/sessions/a/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SubscribeEvents(t *testing.T) {
	srv, _ := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/s1/events?watch=destination", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	next := func() string {
		for {
			select {
			case l, ok := <-lines:
				if !ok {
					t.Fatal("stream closed")
				}
				if strings.HasPrefix(l, "data: ") {
					return strings.TrimPrefix(l, "data: ")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for event")
			}
		}
	}

	assert.Equal(t, "connected", next())

	post(t, srv, "/sessions/s1/actions", `{"type":"delete_button_tapped","id":"9"}`)

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(next()), &diff))
	require.NotNil(t, diff.TargetID)
	assert.Equal(t, domain.ID("9"), *diff.TargetID)
	assert.Equal(t, "s1", diff.SessionID)
}

func TestServer_MetricsAndInfo(t *testing.T) {
	srv, _ := newServer(t)
	post(t, srv, "/sessions/s1/actions", `{"type":"add_button_tapped"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `roster_actions_total{action="add_button_tapped"} 1`)
	assert.Contains(t, string(body), `roster_http_requests_total{method="POST",route="/sessions/{id}/actions",status="200"} 1`)

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	resp.Body.Close()
	assert.Equal(t, strings.TrimSpace(roster.Version), info["version"])

	resp, err = http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetSwagger(t *testing.T) {
	doc, err := rosterhttp.GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/sessions/{id}/actions"))
}
