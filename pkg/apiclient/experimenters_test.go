package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupExperimenters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/experimenters", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 2, "login": "bob", "first_name": "Bob", "last_name": "Builder", "email": "bob@example.org",
			 "memberships": [{"group_id": 1, "role": "member"}, {"group_id": 5, "role": "owner"}]},
			{"id": 3, "login": "carol", "first_name": "Carol", "last_name": "Singer"}
		]`))
	}))
	defer server.Close()

	exps, err := New(server.URL).LookupExperimenters(context.Background())
	require.NoError(t, err)
	require.Len(t, exps, 2)

	assert.Equal(t, int64(2), exps[0].ID)
	assert.Equal(t, "bob@example.org", exps[0].Email)
	require.Len(t, exps[0].Memberships, 2)
	assert.False(t, exps[0].Memberships[0].IsOwner())
	assert.True(t, exps[0].Memberships[1].IsOwner())
	assert.Empty(t, exps[1].Email)
}

func TestLookupExperimenter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/api/v1/experimenters/by-login/alice":
			_, _ = w.Write([]byte(`{"id": 10, "login": "alice"}`))
		case "/api/v1/experimenters/42":
			_, _ = w.Write([]byte(`{"id": 42, "login": "zed"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(APIError{Code: CodeAPIUsage, Message: "no such user"})
		}
	}))
	defer server.Close()

	client := New(server.URL)

	exp, err := client.LookupExperimenter(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), exp.ID)

	exp, err = client.GetExperimenter(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "zed", exp.Login)

	_, err = client.LookupExperimenter(context.Background(), "mallory")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCreateExperimenter(t *testing.T) {
	var got CreateExperimenterRequest
	var raw map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/experimenters", r.URL.Path)

		var body json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NoError(t, json.Unmarshal(body, &got))
		require.NoError(t, json.Unmarshal(body, &raw))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 100}`))
	}))
	defer server.Close()

	client := New(server.URL)
	exp := NewExperimenter{Login: "alice", FirstName: "Alice", LastName: "Wonderland"}

	id, err := client.CreateExperimenter(context.Background(), exp, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	assert.Equal(t, exp, got.Experimenter)
	assert.Nil(t, got.Password)
	assert.Equal(t, int64(5), got.DefaultGroupID)
	assert.Equal(t, []int64{}, got.OtherGroupIDs)
	assert.NotContains(t, raw, "password")

	id, err = client.CreateExperimenterWithPassword(context.Background(), exp, "secret", 5, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	require.NotNil(t, got.Password)
	assert.Equal(t, "secret", *got.Password)
	assert.Equal(t, []int64{1}, got.OtherGroupIDs)
}

func TestCreateExperimenterConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(APIError{Code: CodeConflict, Message: "duplicate login"})
	}))
	defer server.Close()

	_, err := New(server.URL).CreateExperimenter(context.Background(), NewExperimenter{Login: "alice"}, 1, nil)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.True(t, IsValidation(err))
}

func TestChangePasswords(t *testing.T) {
	type seen struct {
		method, path, password string
	}
	var calls []seen

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		calls = append(calls, seen{r.Method, r.URL.Path, req.Password})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	require.NoError(t, client.ChangePassword(context.Background(), "own"))
	require.NoError(t, client.ChangeUserPassword(context.Background(), "alice", "theirs"))

	assert.Equal(t, []seen{
		{http.MethodPut, "/api/v1/experimenters/me/password", "own"},
		{http.MethodPut, "/api/v1/experimenters/by-login/alice/password", "theirs"},
	}, calls)
}
