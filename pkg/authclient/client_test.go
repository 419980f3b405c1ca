package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/authclient"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionstate"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/watchdog"
)

const userPayload = `{
	"usuario": "GESNEU",
	"nombre": "Gestor",
	"apellidos": "Neumáticos",
	"perfiles": [{"codigo": "ADM", "descripcion": "Administrador"}]
}`

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("success returns user and clears store", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/login", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(userPayload))
		}))
		defer srv.Close()

		store := sessionstate.NewStore()
		store.Set("sesión expirada")

		client, err := authclient.New(srv.URL+"/api", authclient.WithSessionStore(store))
		require.NoError(t, err)

		user, err := client.Authenticate(context.Background(), "GESNEU", "secreto")
		require.NoError(t, err)

		assert.Equal(t, "GESNEU", user.Usuario)
		assert.Equal(t, "Gestor", user.Nombre)
		require.Len(t, user.Perfiles, 1)
		assert.Equal(t, "Administrador", user.Perfiles[0].Descripcion)
		assert.True(t, user.HasPerfil("Administrador"))

		assert.Equal(t, map[string]string{"usuario": "GESNEU", "password": "secreto"}, gotBody)
		assert.Nil(t, store.Current(), "successful authentication resets the session-error slot")
	})

	t.Run("rejection carries the backend message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Credenciales inválidas"}`))
		}))
		defer srv.Close()

		store := sessionstate.NewStore()
		client, err := authclient.New(srv.URL+"/api", authclient.WithSessionStore(store))
		require.NoError(t, err)

		_, err = client.Authenticate(context.Background(), "alice", "wrong")

		var authErr *authclient.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Credenciales inválidas", authErr.Message)
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Nil(t, store.Current(), "a failed login is not a session invalidation")
	})

	t.Run("rejection without message falls back to generic", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		_, err = client.Authenticate(context.Background(), "alice", "wrong")

		var authErr *authclient.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, authclient.GenericAuthMessage, authErr.Message)
	})

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		_, err = client.Authenticate(context.Background(), "alice", "pw")
		assert.ErrorIs(t, err, authclient.ErrUnexpectedStatus)
	})
}

func TestCheckSession(t *testing.T) {
	t.Parallel()

	t.Run("resolves the current user", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/session", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(userPayload))
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		user, err := client.CheckSession(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "GESNEU", user.Usuario)
	})

	t.Run("no session maps to ErrNoSession", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		user, err := client.CheckSession(context.Background())
		assert.Nil(t, user)
		assert.ErrorIs(t, err, authclient.ErrNoSession)
	})
}

func TestTerminate(t *testing.T) {
	t.Parallel()

	t.Run("posts to logout", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		require.NoError(t, client.Terminate(context.Background()))
		assert.Equal(t, "/api/logout", gotPath)
	})
}

func TestCheckSessionWithCookies(t *testing.T) {
	t.Parallel()

	t.Run("relays the given cookies, bypassing the jar", func(t *testing.T) {
		t.Parallel()

		var gotCookies []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/login":
				http.SetCookie(w, &http.Cookie{Name: "sid", Value: "process-own", Path: "/"})
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(userPayload))
			case "/api/session":
				gotCookies = r.Header.Values("Cookie")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"usuario":"alice"}`))
			}
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		// Seed the jar with the process's own session. It must not leak
		// into a lookup made on a visitor's behalf.
		_, err = client.Authenticate(context.Background(), "GESNEU", "secreto")
		require.NoError(t, err)

		user, err := client.CheckSessionWithCookies(context.Background(), []string{"sid=visitor-session"})
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Usuario)
		assert.Equal(t, []string{"sid=visitor-session"}, gotCookies)
	})

	t.Run("no cookies and a 401 map to ErrNoSession", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := authclient.New(srv.URL + "/api")
		require.NoError(t, err)

		user, err := client.CheckSessionWithCookies(context.Background(), nil)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, authclient.ErrNoSession)
	})

	t.Run("anonymous lookup does not trip the watchdog", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		store := sessionstate.NewStore()
		outbound := &http.Client{}
		watchdog.Install(outbound, store, watchdog.WithExemptPaths("/api/login", "/api/session"))

		client, err := authclient.New(srv.URL+"/api", authclient.WithHTTPClient(outbound))
		require.NoError(t, err)

		_, err = client.CheckSessionWithCookies(context.Background(), nil)
		assert.ErrorIs(t, err, authclient.ErrNoSession)
		assert.Nil(t, store.Current(), "an anonymous visitor is not an invalidated session")
	})
}

func TestSessionCookieTravelsWithCalls(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc123", Path: "/"})
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(userPayload))
		case "/api/session":
			if c, err := r.Cookie("sid"); err != nil || c.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(userPayload))
		}
	}))
	defer srv.Close()

	client, err := authclient.New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = client.Authenticate(context.Background(), "GESNEU", "secreto")
	require.NoError(t, err)

	user, err := client.CheckSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GESNEU", user.Usuario)
}
