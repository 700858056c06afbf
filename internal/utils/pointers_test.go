package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/isp-console/internal/utils"
)

func TestPtr(t *testing.T) {
	v := 5
	p := utils.Ptr(v)
	v = 6
	require.Equal(t, 5, *p)
}

func TestValueOr(t *testing.T) {
	require.True(t, utils.ValueOr(nil, true))
	require.False(t, utils.ValueOr(utils.Ptr(false), true))
	require.Equal(t, "set", utils.ValueOr(utils.Ptr("set"), "fallback"))
}

func TestAssign(t *testing.T) {
	name := "Alice"
	utils.Assign(&name, nil)
	require.Equal(t, "Alice", name)

	utils.Assign(&name, utils.Ptr(""))
	require.Empty(t, name)
}
