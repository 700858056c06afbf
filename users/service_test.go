package users_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/internal/apitest"
	"github.com/jrsteele09/isp-console/internal/utils"
	"github.com/jrsteele09/isp-console/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParams_Query(t *testing.T) {
	q := users.ListParams{}.Query()
	require.Equal(t, "20", q.Get("page_size"))
	require.False(t, q.Has("page"))

	q = users.ListParams{Page: 2, PageSize: 50, Search: "ali", UserType: users.UserTypeAdmin, IsActive: utils.Ptr(false)}.Query()
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "50", q.Get("page_size"))
	require.Equal(t, "ali", q.Get("search"))
	require.Equal(t, "admin", q.Get("user_type"))
	require.Equal(t, "false", q.Get("is_active"))
}

func TestService_List(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"count":    41,
			"next":     "http://backend/users/?page=4",
			"previous": "http://backend/users/?page=2",
			"results": []map[string]any{
				{"id": 1, "login_id": "alice", "name": "Alice", "user_type": "admin", "date_joined": "2026-01-02T03:04:05Z"},
			},
		})
	}))

	page, err := users.NewService(client).List(context.Background(), users.ListParams{Page: 3})
	require.NoError(t, err)
	require.Equal(t, 41, page.Count)
	require.Equal(t, "4", page.NextCursor)
	require.Equal(t, "2", page.PreviousCursor)
	require.Len(t, page.Items, 1)
	require.Equal(t, api.ID("1"), page.Items[0].ID)
	require.True(t, page.Items[0].IsAdmin())
	require.Equal(t, 2026, page.Items[0].DateJoined.Year())
}

func TestService_CreateValidatesLocally(t *testing.T) {
	var hits atomic.Int32
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body := apitest.DecodeBody(r)
		assert.Equal(t, "carol", body["login_id"])
		assert.NotContains(t, body, "ConfirmPassword")
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{"id": 7, "login_id": "carol"})
	}))
	svc := users.NewService(client)

	bad := validCreateForm()
	bad.Email = ""
	_, err := svc.Create(context.Background(), bad)
	require.Error(t, err)
	require.Zero(t, hits.Load())

	created, err := svc.Create(context.Background(), validCreateForm())
	require.NoError(t, err)
	require.Equal(t, api.ID("7"), created.ID)
	require.Equal(t, int32(1), hits.Load())
}

func TestService_UpdateSendsOnlyChangedFields(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/7/", r.URL.Path)
		body := apitest.DecodeBody(r)
		assert.Equal(t, map[string]any{"is_active": false}, body)
		apitest.WriteJSON(w, http.StatusOK, map[string]any{"id": 7, "is_active": false})
	}))

	user, err := users.NewService(client).Update(context.Background(), "7", users.UpdateForm{IsActive: utils.Ptr(false)})
	require.NoError(t, err)
	require.False(t, user.IsActive)
}

func TestService_GetNotFound(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apitest.WriteJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
	}))

	_, err := users.NewService(client).Get(context.Background(), "99")
	require.True(t, api.IsNotFound(err))
	require.Equal(t, "Not found.", api.Message(err, ""))
}

func TestService_ProfileAndPermissions(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/profile/":
			apitest.WriteJSON(w, http.StatusOK, map[string]any{"id": "u-1", "login_id": "alice", "name": "Alice"})
		case "/users/permissions/":
			apitest.WriteJSON(w, http.StatusOK, map[string]any{"permissions": []string{"users.view", "billing.view"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	svc := users.NewService(client)

	me, err := svc.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", me.DisplayName())

	perms, err := svc.Permissions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"users.view", "billing.view"}, perms)
}

func TestService_ChangePassword(t *testing.T) {
	var hits atomic.Int32
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/users/change-password/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	svc := users.NewService(client)

	require.Error(t, svc.ChangePassword(context.Background(), users.PasswordChangeForm{CurrentPassword: "x", NewPassword: "weak", ConfirmPassword: "weak"}))
	require.Zero(t, hits.Load())

	require.NoError(t, svc.ChangePassword(context.Background(), users.PasswordChangeForm{CurrentPassword: "x", NewPassword: "Password123", ConfirmPassword: "Password123"}))
	require.Equal(t, int32(1), hits.Load())
}
