package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/isp-console/api"
	"github.com/stretchr/testify/require"
)

func TestID_AcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A api.ID `json:"a"`
		B api.ID `json:"b"`
		C api.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":17,"b":"sdt-4","c":null}`), &v))
	require.Equal(t, api.ID("17"), v.A)
	require.Equal(t, api.ID("sdt-4"), v.B)
	require.True(t, v.C.IsZero())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":17,"b":"sdt-4","c":""}`, string(out))
}

func TestTimestamp_Formats(t *testing.T) {
	var v struct {
		S api.Timestamp `json:"s"`
		N api.Timestamp `json:"n"`
		Z api.Timestamp `json:"z"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"2025-03-01T10:00:00Z","n":1740823200,"z":null}`), &v))
	want := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.True(t, want.Equal(v.S.Time))
	require.True(t, want.Equal(v.N.Time))
	require.True(t, v.Z.IsZero())

	require.Error(t, json.Unmarshal([]byte(`{"s":"yesterday"}`), &v))
}

func TestDetailAndActionPaths(t *testing.T) {
	require.Equal(t, "/users/12/", api.Detail(api.Users, "12"))
	require.Equal(t, "/sdt/7/approve/", api.Action(api.SDT, "7", "approve"))
}
