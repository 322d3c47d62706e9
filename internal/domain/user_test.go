package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	require.Equal(t, RoleAdmin, ParseRole("admin"))
	require.Equal(t, RoleClient, ParseRole("client"))
	require.Equal(t, RoleClient, ParseRole(""))
	require.Equal(t, RoleClient, ParseRole("Admin"))
	require.Equal(t, RoleClient, ParseRole("superuser"))
}
