package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/idgen"
	"github.com/aretw0/roster/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mgr := session.NewManager(memory.NewStore(), session.WithStoreOptions(
		roster.WithIDGenerator(idgen.NewIncrementing(1)),
	))
	return NewServer(mgr, "")
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultState(t *testing.T, res *mcp.CallToolResult) *domain.State {
	t.Helper()
	require.NotNil(t, res)
	require.False(t, res.IsError, "tool returned error: %v", res.Content)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var state domain.State
	require.NoError(t, json.Unmarshal([]byte(text.Text), &state))
	return &state
}

func TestAddAndDeleteContact(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleAddContact(ctx, call(map[string]any{"name": "Blob"}))
	require.NoError(t, err)
	state := resultState(t, res)
	assert.Nil(t, state.Destination)
	require.Equal(t, 1, state.Contacts.Len())
	c, _ := state.Contacts.At(0)
	assert.Equal(t, "Blob", c.Name)

	res, err = s.handleDeleteContact(ctx, call(map[string]any{"id": string(c.ID)}))
	require.NoError(t, err)
	assert.Equal(t, 0, resultState(t, res).Contacts.Len())
}

func TestAddContact_BlankName(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleAddContact(context.Background(), call(map[string]any{"name": "  "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleAddContact(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDispatch(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleDispatch(ctx, call(map[string]any{
		"action":  `{"type":"delete_button_tapped","id":"9"}`,
		"session": "other",
	}))
	require.NoError(t, err)
	alert, ok := resultState(t, res).Alert()
	require.True(t, ok)
	id, _ := alert.TargetID()
	assert.Equal(t, domain.ID("9"), id)

	// The default session is untouched.
	res, err = s.handleListContacts(ctx, call(nil))
	require.NoError(t, err)
	assert.Nil(t, resultState(t, res).Destination)

	res, err = s.handleDispatch(ctx, call(map[string]any{"action": `{"type":"reorder"}`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestStateResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleAddContact(ctx, call(map[string]any{"name": "Blob"}))
	require.NoError(t, err)

	contents, err := s.readState(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, StateURI, text.URI)
	assert.Contains(t, text.Text, `"name":"Blob"`)
}
