// Package testserver runs an in-memory REST backend with the tasks,
// clients, transactions and signup endpoints for tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/bizpilot/internal/transport"
)

// Request is one call the backend received.
type Request struct {
	Method        string
	Path          string
	Body          string
	Authorization string
}

type failure struct {
	status  int
	message string
}

// TestServer is a fake backend. Entities are stored as JSON objects with
// numeric ids assigned in creation order.
type TestServer struct {
	Server *httptest.Server
	Token  string

	mu          sync.Mutex
	collections map[string][]map[string]any
	users       map[string]map[string]any
	nextID      int
	requests    []Request
	failures    map[string]failure
	bareCreate  bool
}

// New starts a backend. A non-empty token makes every endpoint require it
// as a bearer token.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	ts := &TestServer{
		Token: token,
		collections: map[string][]map[string]any{
			"tasks":        {},
			"clients":      {},
			"transactions": {},
		},
		users:    map[string]map[string]any{},
		failures: map[string]failure{},
	}

	r := chi.NewRouter()
	r.Use(ts.record)
	if token != "" {
		r.Use(transport.AuthMiddleware(transport.NewStaticKeys(token)))
	}
	r.Use(ts.injectFailures)
	r.Post("/users/signup", ts.handleSignup)
	r.Route("/{resource}", func(r chi.Router) {
		r.Get("/", ts.handleList)
		r.Post("/", ts.handleCreate)
		r.Put("/{id}", ts.handleUpdate)
		r.Delete("/{id}", ts.handleDelete)
	})

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Server.Close)
	return ts
}

// URL returns the base URL of the backend.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Seed appends entities to a collection. Entities without an id get one.
func (ts *TestServer) Seed(resource string, entities ...map[string]any) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, e := range entities {
		if _, ok := e["id"]; !ok {
			e["id"] = ts.allocID()
		} else if n, ok := e["id"].(int); ok && n > ts.nextID {
			ts.nextID = n
		}
		ts.collections[resource] = append(ts.collections[resource], e)
	}
}

// Fail makes the next requests matching method and path return status with
// an {"error": message} body until Recover is called.
func (ts *TestServer) Fail(method, path string, status int, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures[method+" "+path] = failure{status: status, message: message}
}

// Recover clears all injected failures.
func (ts *TestServer) Recover() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures = map[string]failure{}
}

// OmitCreatedBody makes POST answer 201 with a plain-text body instead of
// the created entity.
func (ts *TestServer) OmitCreatedBody(omit bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.bareCreate = omit
}

// Requests returns every request received so far.
func (ts *TestServer) Requests() []Request {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]Request(nil), ts.requests...)
}

// RequestsTo returns the requests matching method and path.
func (ts *TestServer) RequestsTo(method, path string) []Request {
	var out []Request
	for _, req := range ts.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// Collection returns a copy of the stored entities of a resource.
func (ts *TestServer) Collection(resource string) []map[string]any {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]map[string]any, 0, len(ts.collections[resource]))
	for _, e := range ts.collections[resource] {
		cp := make(map[string]any, len(e))
		for k, v := range e {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}

func (ts *TestServer) allocID() int {
	ts.nextID++
	return ts.nextID
}

func (ts *TestServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		ts.mu.Lock()
		ts.requests = append(ts.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Body:          string(body),
			Authorization: r.Header.Get("Authorization"),
		})
		ts.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (ts *TestServer) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		f, ok := ts.failures[r.Method+" "+r.URL.Path]
		ts.mu.Unlock()
		if ok {
			writeJSON(w, f.status, map[string]string{"error": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ts *TestServer) handleList(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	ts.mu.Lock()
	items, ok := ts.collections[resource]
	if ok {
		items = append([]map[string]any(nil), items...)
	}
	ts.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (ts *TestServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	var entity map[string]any
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ts.mu.Lock()
	if _, ok := ts.collections[resource]; !ok {
		ts.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return
	}
	entity["id"] = ts.allocID()
	ts.collections[resource] = append([]map[string]any{entity}, ts.collections[resource]...)
	bare := ts.bareCreate
	ts.mu.Unlock()

	if bare {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("OK"))
		return
	}
	writeJSON(w, http.StatusCreated, entity)
}

func (ts *TestServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, e := range ts.collections[resource] {
		if idString(e["id"]) != id {
			continue
		}
		for k, v := range patch {
			if k != "id" {
				e[k] = v
			}
		}
		writeJSON(w, http.StatusOK, e)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (ts *TestServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	items := ts.collections[resource]
	for i, e := range items {
		if idString(e["id"]) == id {
			ts.collections[resource] = append(items[:i:i], items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (ts *TestServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var user map[string]any
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	email, _ := user["email"].(string)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, exists := ts.users[email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "User already exists"})
		return
	}
	ts.users[email] = user
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
