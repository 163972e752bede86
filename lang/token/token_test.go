package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEqual(t, "", tok.String(), "missing string representation of token %d", tok)
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "if", IF.GoString())
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range Keywords {
		require.True(t, kw.IsKeyword(), "%v.IsKeyword() = false, want true", kw)
	}
	require.False(t, IDENT.IsKeyword())
	require.False(t, MAIN.IsKeyword())
}
