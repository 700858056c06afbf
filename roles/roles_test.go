package roles_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/internal/apitest"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/jrsteele09/isp-console/roles"
	rolerepofake "github.com/jrsteele09/isp-console/roles/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.Error(t, roles.Validate(roles.Role{}))
	require.Error(t, roles.Validate(roles.Role{Name: "x"}))
	require.NoError(t, roles.Validate(roles.Role{Name: "Billing"}))

	err := roles.ValidateBulk(roles.BulkAssignment{})
	var fe apperrors.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 2)
}

func TestService_ListBareArray(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Admin", "permissions": []string{"users.edit"}},
			{"id": 2, "name": "Support"},
		})
	}))

	page, err := roles.NewService(client).List(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)
	require.False(t, page.HasNext())
	require.True(t, page.Items[0].HasPermission("users.edit"))
}

func TestService_BulkAssign(t *testing.T) {
	var body map[string]any
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/roles/bulk-assign/", r.URL.Path)
		body = apitest.DecodeBody(r)
		w.WriteHeader(http.StatusOK)
	}))

	err := roles.NewService(client).BulkAssign(context.Background(), roles.BulkAssignment{
		UserIDs: []api.ID{"1", "2"},
		RoleIDs: []api.ID{"3"},
	})
	require.NoError(t, err)
	require.Equal(t, []any{float64(1), float64(2)}, body["user_ids"])
}

func TestService_PermissionsFollowsPages(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			apitest.WriteJSON(w, http.StatusOK, map[string]any{
				"count":   3,
				"results": []map[string]any{{"id": 3, "codename": "reports.view"}},
			})
			return
		}
		apitest.WriteJSON(w, http.StatusOK, map[string]any{
			"count":   3,
			"next":    "http://backend/permissions/?page=2",
			"results": []map[string]any{{"id": 1, "codename": "users.view"}, {"id": 2, "codename": "users.edit"}},
		})
	}))

	perms, err := roles.NewService(client).Permissions(context.Background())
	require.NoError(t, err)
	require.Len(t, perms, 3)
	require.Equal(t, "reports.view", perms[2].Codename)
}

func TestService_UserRolesFilters(t *testing.T) {
	client := apitest.NewClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("user"))
		assert.False(t, r.URL.Query().Has("role"))
		apitest.WriteJSON(w, http.StatusOK, []map[string]any{{"id": 1, "user": 5, "role": 2, "role_name": "Support"}})
	}))

	page, err := roles.NewService(client).UserRoles(context.Background(), "5", "")
	require.NoError(t, err)
	require.Equal(t, "Support", page.Items[0].RoleName)
}

func TestFakeRoleRepo(t *testing.T) {
	repo := rolerepofake.NewFakeRoleRepo()
	admin := &roles.Role{Name: "Admin"}
	support := &roles.Role{Name: "Support"}
	require.NoError(t, repo.Upsert(admin))
	require.NoError(t, repo.Upsert(support))

	require.NoError(t, repo.Assign("u1", admin.ID.String()))
	require.NoError(t, repo.Assign("u2", admin.ID.String()))
	require.ErrorIs(t, repo.Assign("u1", "404"), roles.ErrRoleNotFound)

	got, err := repo.Get(admin.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, got.UserCount)

	forUser, err := repo.RolesForUser("u1")
	require.NoError(t, err)
	require.Len(t, forUser, 1)

	require.NoError(t, repo.Delete(admin.ID.String()))
	forUser, err = repo.RolesForUser("u1")
	require.NoError(t, err)
	require.Empty(t, forUser)
}
