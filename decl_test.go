package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFieldDecl(t *testing.T) {
	cases := []struct {
		raw    string
		ident  string
		ptr    int
		count  int
		isFunc bool
	}{
		{"next", "next", 0, 1, false},
		{"*next", "next", 1, 1, false},
		{"**next", "next", 2, 1, false},
		{"co[3]", "co", 0, 3, false},
		{"v[0]", "v", 0, 0, false},
		{"mat[4][4]", "mat", 0, 16, false},
		{"(*func)()", "func", 1, 1, true},
		{"(*mat)[4][4]", "mat", 1, 1, false},
	}
	for _, c := range cases {
		got := parseFieldDecl(c.raw)
		require.Equalf(t, c.ident, got.Ident, "ident for %q", c.raw)
		require.Equalf(t, c.ptr, got.PtrDepth, "ptr depth for %q", c.raw)
		require.Equalf(t, c.count, got.InlineArrayCount, "count for %q", c.raw)
		require.Equalf(t, c.isFunc, got.IsFuncPtr, "is_func_ptr for %q", c.raw)
	}
}

func TestParseFieldDeclUnparseableArrayDefaultsToOne(t *testing.T) {
	got := parseFieldDecl("weird[x]")
	require.Equal(t, "weird", got.Ident)
	require.Equal(t, 1, got.InlineArrayCount)
}
