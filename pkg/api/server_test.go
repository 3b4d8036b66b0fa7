package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/hittest"
	"github.com/biofabric/biofabric/pkg/layout"
	"github.com/biofabric/biofabric/pkg/render"
	"github.com/biofabric/biofabric/pkg/session"
)

// memStore is a minimal in-memory session.Store for exercising the API
// handlers without touching a filesystem or external database.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newMemStore() *memStore { return &memStore{sessions: make(map[string]*session.Session)} }

func (m *memStore) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (m *memStore) Set(ctx context.Context, sess *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) Close() error { return nil }

var _ session.Store = (*memStore)(nil)

func sampleLaidOutSession(id string) *session.Session {
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp"})

	nl := layout.NewNetworkLayout()
	nl.RowCount = 2
	nl.ColumnCount = 1
	nl.ColumnCountNoShadows = 1
	nl.SetNode("a", layout.NodeLayout{Row: 0, MinCol: 0, MaxCol: 0, MinColNoShadows: 0, MaxColNoShadows: 0})
	nl.SetNode("b", layout.NodeLayout{Row: 1, MinCol: 0, MaxCol: 0, MinColNoShadows: 0, MaxColNoShadows: 0})
	nl.Links = []layout.LinkLayout{
		{Column: 0, SourceRow: 0, TargetRow: 1, Source: "a", Target: "b", Relation: "pp"},
	}

	return &session.Session{
		ID:             id,
		Network:        net,
		Layout:         nl,
		DisplayOptions: session.DefaultDisplayOptions(),
	}
}

func TestPutGetDeleteSession(t *testing.T) {
	srv := NewServer(newMemStore(), nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	sess := sampleLaidOutSession("s1")
	var body bytes.Buffer
	if err := session.WriteXML(&body, sess); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/sessions/s1/", &body)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/sessions/s1/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	got, err := session.ReadXML(resp.Body)
	if err != nil {
		t.Fatalf("ReadXML: %v", err)
	}
	if got.Network.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", got.Network.NodeCount())
	}

	resp, err = http.Get(ts.URL + "/sessions/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "s1" {
		t.Errorf("list = %v, want [s1]", ids)
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/sessions/s1/", nil)
	resp, err = ts.Client().Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/sessions/s1/")
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleRender(t *testing.T) {
	store := newMemStore()
	sess := sampleLaidOutSession("s1")
	if err := store.Set(context.Background(), sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	srv := NewServer(store, nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(fmt.Sprintf("%s/sessions/s1/render?x=0&y=0&width=2&height=2&ppgu=4", ts.URL))
	if err != nil {
		t.Fatalf("GET render: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", resp.StatusCode)
	}
	out, err := render.DecodeRenderOutput(resp.Body)
	if err != nil {
		t.Fatalf("DecodeRenderOutput: %v", err)
	}
	if out.Nodes.InstanceCount() != 2 {
		t.Errorf("Nodes.InstanceCount() = %d, want 2", out.Nodes.InstanceCount())
	}
	if out.Links.InstanceCount() != 1 {
		t.Errorf("Links.InstanceCount() = %d, want 1", out.Links.InstanceCount())
	}
}

func TestHandleRenderMissingLayout(t *testing.T) {
	store := newMemStore()
	sess := sampleLaidOutSession("s1")
	sess.Layout = nil
	if err := store.Set(context.Background(), sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	srv := NewServer(store, nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sessions/s1/render")
	if err != nil {
		t.Fatalf("GET render: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("render status = %d, want 409", resp.StatusCode)
	}
}

func TestHandleHitTest(t *testing.T) {
	store := newMemStore()
	sess := sampleLaidOutSession("s1")
	if err := store.Set(context.Background(), sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	srv := NewServer(store, nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sessions/s1/hit?x=0&y=0&tolerance=0.5")
	if err != nil {
		t.Fatalf("GET hit: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hit status = %d", resp.StatusCode)
	}
	var result hittest.HitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.IsEmpty() {
		t.Error("expected a hit at (0, 0)")
	}
}

func TestHandleGetSessionNotFound(t *testing.T) {
	srv := NewServer(newMemStore(), nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sessions/nope/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
