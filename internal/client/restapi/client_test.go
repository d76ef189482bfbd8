package restapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskdeck/internal/client/restapi"
	"github.com/colonyops/taskdeck/internal/core/auth"
	"github.com/colonyops/taskdeck/internal/core/task"
)

// fakeAPI is a minimal json-server stand-in: flat resource collections with
// query-param equality filtering.
type fakeAPI struct {
	mu       sync.Mutex
	users    []map[string]any
	sessions []map[string]any
	todos    []map[string]any
}

func (f *fakeAPI) collection(name string) *[]map[string]any {
	switch name {
	case "users":
		return &f.users
	case "sessions":
		return &f.sessions
	default:
		return &f.todos
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	for _, name := range []string{"users", "sessions", "todos"} {
		name := name
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			coll := f.collection(name)

			switch r.Method {
			case http.MethodGet:
				matched := make([]map[string]any, 0)
				for _, rec := range *coll {
					ok := true
					for key, vals := range r.URL.Query() {
						if str, _ := rec[key].(string); str != vals[0] {
							ok = false
							break
						}
					}
					if ok {
						matched = append(matched, rec)
					}
				}
				_ = json.NewEncoder(w).Encode(matched)
			case http.MethodPost:
				var rec map[string]any
				_ = json.NewDecoder(r.Body).Decode(&rec)
				*coll = append(*coll, rec)
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(rec)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		})
		mux.HandleFunc("/"+name+"/", func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			coll := f.collection(name)
			id := strings.TrimPrefix(r.URL.Path, "/"+name+"/")

			idx := -1
			for i, rec := range *coll {
				if rec["id"] == id {
					idx = i
					break
				}
			}
			if idx < 0 {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode((*coll)[idx])
			case http.MethodPatch:
				var patch map[string]any
				_ = json.NewDecoder(r.Body).Decode(&patch)
				for k, v := range patch {
					(*coll)[idx][k] = v
				}
				_ = json.NewEncoder(w).Encode((*coll)[idx])
			case http.MethodDelete:
				*coll = append((*coll)[:idx], (*coll)[idx+1:]...)
				_ = json.NewEncoder(w).Encode(map[string]any{})
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		})
	}
	return mux
}

func newTestClient(t *testing.T) (*restapi.Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return restapi.New(srv.URL, zerolog.Nop()), api
}

func seedUser(api *fakeAPI) {
	api.users = append(api.users, map[string]any{
		"id":       "u1",
		"username": "alice",
		"password": "secret",
		"email":    "alice@example.com",
		"name":     "Alice",
		"role":     "user",
	})
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token and stores session", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		result, err := client.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, "u1", result.User.ID)
		assert.NotEmpty(t, result.Token)

		require.Len(t, api.sessions, 1)
		assert.Equal(t, result.Token, api.sessions[0]["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		_, err := client.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, auth.ErrBadCredentials)
		assert.Empty(t, api.sessions, "no session persisted on failure")
	})

	t.Run("transport failure maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := restapi.New(srv.URL, zerolog.Nop())

		_, err := client.Login(ctx, "alice", "secret")
		assert.ErrorIs(t, err, auth.ErrUnavailable)
	})
}

func TestClient_Signup(t *testing.T) {
	ctx := context.Background()
	req := auth.SignupRequest{
		Username: "bob",
		Password: "hunter2",
		Email:    "bob@example.com",
		Name:     "Bob",
	}

	t.Run("creates account and logs in", func(t *testing.T) {
		client, api := newTestClient(t)

		result, err := client.Signup(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "bob", result.User.Username)
		assert.Equal(t, "user", result.User.Role)
		assert.NotEmpty(t, result.Token)
		assert.Len(t, api.users, 1)
		assert.Len(t, api.sessions, 1)
	})

	t.Run("duplicate username", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		dup := req
		dup.Username = "alice"
		_, err := client.Signup(ctx, dup)
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		dup := req
		dup.Email = "alice@example.com"
		_, err := client.Signup(ctx, dup)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})
}

func TestClient_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token resolves profile", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		login, err := client.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		user, err := client.Validate(ctx, login.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown token", func(t *testing.T) {
		client, _ := newTestClient(t)

		_, err := client.Validate(ctx, "nope")
		assert.ErrorIs(t, err, auth.ErrSessionExpired)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)
		api.sessions = append(api.sessions, map[string]any{
			"id":        "s1",
			"userId":    "u1",
			"token":     "stale",
			"createdAt": time.Now().Add(-48 * time.Hour).Format(time.RFC3339),
			"expiresAt": time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		})

		_, err := client.Validate(ctx, "stale")
		assert.ErrorIs(t, err, auth.ErrSessionExpired)
		assert.Empty(t, api.sessions, "expired session removed server-side")
	})
}

func TestClient_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes session", func(t *testing.T) {
		client, api := newTestClient(t)
		seedUser(api)

		login, err := client.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		require.Len(t, api.sessions, 1)

		require.NoError(t, client.Logout(ctx, login.Token))
		assert.Empty(t, api.sessions)
	})

	t.Run("unknown token is not an error", func(t *testing.T) {
		client, _ := newTestClient(t)
		assert.NoError(t, client.Logout(ctx, "ghost"))
	})
}

func TestClient_TaskSync(t *testing.T) {
	ctx := context.Background()
	client, api := newTestClient(t)

	item := task.Task{
		ID:        "t1",
		Content:   "Push me",
		Priority:  task.PriorityMedium,
		Category:  task.CategoryGeneral,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, client.PushTask(ctx, "u1", item))
	require.Len(t, api.todos, 1)
	assert.Equal(t, "u1", api.todos[0]["userId"])

	got, err := client.FetchTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Push me", got[0].Content)

	other, err := client.FetchTasks(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, client.RemoveTask(ctx, "t1"))
	assert.Empty(t, api.todos)
}
