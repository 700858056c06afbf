package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/isp-console/api"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   api.ID `json:"id"`
	Name string `json:"name"`
}

func TestDecodePage_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantItems  int
		wantCount  int
		wantCursor string
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 2, ""},
		{"envelope with page link", `{"count":42,"next":"http://api/users/?page=3","previous":null,"results":[{"id":1}]}`, 1, 42, "3"},
		{"envelope with cursor link", `{"next":"http://api/sdt/?cursor=cD0yMDI1","results":[{"id":"x"}]}`, 1, 1, "cD0yMDI1"},
		{"envelope last page", `{"count":1,"next":null,"results":[{"id":1}]}`, 1, 1, ""},
		{"opaque next", `{"next":"token-123","results":[]}`, 0, 0, "token-123"},
		{"empty body", ``, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := api.DecodePage[item]([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, page.Items, tt.wantItems)
			require.Equal(t, tt.wantCount, page.Count)
			require.Equal(t, tt.wantCursor, page.NextCursor)
			require.Equal(t, tt.wantCursor != "", page.HasNext())
		})
	}
}

func TestDecodePage_Invalid(t *testing.T) {
	_, err := api.DecodePage[item]([]byte(`{"results":"nope"}`))
	require.Error(t, err)
}

func TestListAll_FollowsCursors(t *testing.T) {
	f := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"count":3,"next":"%s/users/?page=2","results":[{"id":1},{"id":2}]}`, "http://"+r.Host))
		case "2":
			writeJSON(w, http.StatusOK, `{"count":3,"next":null,"results":[{"id":3}]}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"detail":"Invalid page."}`)
		}
	})

	all, err := api.ListAll[item](context.Background(), f.client, api.Users, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, api.ID("3"), all[2].ID)

	limited, err := api.ListAll[item](context.Background(), f.client, api.Users, nil, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
