package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/service"
	"github.com/aussiebroadwan/courier/internal/msg/store/drivers/sqlite"
	"github.com/aussiebroadwan/courier/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t      *testing.T
	router *Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("handler-test-secret"))
	require.NoError(t, err)

	r := NewRouter(signer, "test", st, slog.Default())
	r.TokenService = &service.TokenService{Signer: signer}
	r.UserService = &service.UserService{Store: st, BcryptCost: 4}
	r.MessageService = &service.MessageService{Store: st}
	r.ApplyRoutes()

	return &fixture{t: t, router: r}
}

// do sends a JSON request through the full router. A non-empty token is
// injected into the body's _token field, the way real clients send it.
func (f *fixture) do(method, path, token string, payload map[string]any) *httptest.ResponseRecorder {
	f.t.Helper()

	if payload == nil {
		payload = map[string]any{}
	}
	if token != "" {
		payload["_token"] = token
	}

	var body *bytes.Buffer
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		require.NoError(f.t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) decode(rec *httptest.ResponseRecorder, dst any) {
	f.t.Helper()
	require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// register creates a user and returns their token.
func (f *fixture) register(username string) string {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/register", "", map[string]any{
		"username":   username,
		"password":   username + "-password",
		"first_name": "Test",
		"last_name":  "User",
		"phone":      "+61400000000",
	})
	require.Equal(f.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	f.decode(rec, &resp)
	require.NotEmpty(f.t, resp.Token)
	return resp.Token
}

// send delivers a message and returns its id.
func (f *fixture) send(token, to, body string) int64 {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/messages", token, map[string]any{
		"to_username": to,
		"body":        body,
	})
	require.Equal(f.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message struct {
			ID int64 `json:"id"`
		} `json:"message"`
	}
	f.decode(rec, &resp)
	return resp.Message.ID
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register("alice")

	t.Run("login after register succeeds with a verifiable token", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/login", "", map[string]any{
			"username": "alice",
			"password": "alice-password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
		}
		f.decode(rec, &resp)

		verifier, err := jwtx.NewHS256([]byte("handler-test-secret"))
		require.NoError(t, err)
		claims, err := verifier.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username())
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		wrongPw := f.do(http.MethodPost, "/login", "", map[string]any{
			"username": "alice", "password": "wrong",
		})
		unknown := f.do(http.MethodPost, "/login", "", map[string]any{
			"username": "who", "password": "wrong",
		})

		require.Equal(t, http.StatusBadRequest, wrongPw.Code)
		require.Equal(t, http.StatusBadRequest, unknown.Code)
		require.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
	})

	t.Run("duplicate registration conflicts, no crash", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/register", "", map[string]any{
			"username":   "alice",
			"password":   "pw2",
			"first_name": "Other",
			"last_name":  "Alice",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/register", "", map[string]any{
			"username": "incomplete",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no response ever carries the password hash", func(t *testing.T) {
		token := f.register("hashcheck")
		rec := f.do(http.MethodGet, "/users/hashcheck", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "password")
		require.NotContains(t, rec.Body.String(), "$2a$")
	})
}

func TestUserRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alice := f.register("alice")
	bob := f.register("bob")

	t.Run("listing requires authentication", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/users", "", nil).Code)

		rec := f.do(http.MethodGet, "/users", alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Users []struct {
				Username string `json:"username"`
			} `json:"users"`
		}
		f.decode(rec, &resp)
		require.Len(t, resp.Users, 2)
	})

	t.Run("any signed-in user can view a profile", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/users/alice", bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing user is a 404", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/users/nobody", alice, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inbox and outbox are self-access only", func(t *testing.T) {
		// bob's token never satisfies the alice path parameter
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/users/alice/to", bob, nil).Code)
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/users/alice/from", bob, nil).Code)
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/users/alice/to", "", nil).Code)

		require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/users/alice/to", alice, nil).Code)
		require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/users/alice/from", alice, nil).Code)
	})
}

func TestMessageRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alice := f.register("alice")
	bob := f.register("bob")
	carol := f.register("carol")

	id := f.send(bob, "alice", "hey alice")

	t.Run("sender and recipient can read, carol cannot", func(t *testing.T) {
		path := "/messages/" + itoa(id)

		require.Equal(t, http.StatusOK, f.do(http.MethodGet, path, bob, nil).Code)
		require.Equal(t, http.StatusOK, f.do(http.MethodGet, path, alice, nil).Code)
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, path, carol, nil).Code)
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, path, "", nil).Code)
	})

	t.Run("message expands both parties without hashes", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/messages/"+itoa(id), alice, nil)

		var resp struct {
			Message struct {
				Body     string `json:"body"`
				FromUser struct {
					Username  string `json:"username"`
					FirstName string `json:"first_name"`
				} `json:"from_user"`
				ToUser struct {
					Username string `json:"username"`
				} `json:"to_user"`
			} `json:"message"`
		}
		f.decode(rec, &resp)
		require.Equal(t, "bob", resp.Message.FromUser.Username)
		require.Equal(t, "alice", resp.Message.ToUser.Username)
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("sending requires authentication", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/messages", "", map[string]any{
			"to_username": "alice", "body": "anon mail",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sender comes from the token, not the body", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/messages", carol, map[string]any{
			"to_username":   "alice",
			"body":          "spoof attempt",
			"from_username": "bob",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message struct {
				FromUsername string `json:"from_username"`
			} `json:"message"`
		}
		f.decode(rec, &resp)
		require.Equal(t, "carol", resp.Message.FromUsername)
	})

	t.Run("unknown recipient is a 404", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/messages", bob, map[string]any{
			"to_username": "nobody", "body": "lost",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown message id is a 404", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/messages/99999", alice, nil).Code)
		require.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/messages/junk", alice, nil).Code)
	})
}

func TestMarkReadRoute(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alice := f.register("alice")
	bob := f.register("bob")
	carol := f.register("carol")

	id := f.send(bob, "alice", "read me")
	path := "/messages/" + itoa(id) + "/read"

	t.Run("sender cannot mark their own message read", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, path, bob, nil).Code)
	})

	t.Run("uninvolved user cannot mark read", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, path, carol, nil).Code)
	})

	t.Run("recipient marks read, second mark is a no-op", func(t *testing.T) {
		first := f.do(http.MethodPost, path, alice, nil)
		require.Equal(t, http.StatusOK, first.Code)

		var resp struct {
			Message struct {
				ID     int64   `json:"id"`
				ReadAt *string `json:"read_at"`
			} `json:"message"`
		}
		f.decode(first, &resp)
		require.Equal(t, id, resp.Message.ID)
		require.NotNil(t, resp.Message.ReadAt)

		second := f.do(http.MethodPost, path, alice, nil)
		require.Equal(t, http.StatusOK, second.Code)

		var again struct {
			Message struct {
				ReadAt *string `json:"read_at"`
			} `json:"message"`
		}
		f.decode(second, &again)
		require.NotNil(t, again.Message.ReadAt)

		// The second response round-trips through the database, so allow the
		// driver its storage precision when comparing against the first.
		firstAt, err := time.Parse(time.RFC3339Nano, *resp.Message.ReadAt)
		require.NoError(t, err)
		secondAt, err := time.Parse(time.RFC3339Nano, *again.Message.ReadAt)
		require.NoError(t, err)
		require.WithinDuration(t, firstAt, secondAt, time.Second)

		// Two database-sourced reads must agree exactly.
		third := f.do(http.MethodPost, path, alice, nil)
		require.Equal(t, http.StatusOK, third.Code)
		require.JSONEq(t, second.Body.String(), third.Body.String())
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/livez", "", nil).Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/readyz", "", nil).Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
