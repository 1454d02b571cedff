package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCodesShapeAndRange(t *testing.T) {
	var gen RandomCodes
	for i := 0; i < 2000; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		require.True(t, IsValidCode(code), code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, codeMin)
		assert.LessOrEqual(t, n, codeMax)
	}
}

func TestRandomCodesSpread(t *testing.T) {
	var gen RandomCodes
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 500 draws from 900k values: more than a handful of repeats means a broken source.
	assert.Greater(t, len(seen), 490)
}

func TestIsValidCode(t *testing.T) {
	cases := map[string]bool{
		"123456":  true,
		"000000":  true,
		"12345":   false,
		"1234567": false,
		"12a456":  false,
		"":        false,
		" 123456": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidCode(in), "input %q", in)
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	b, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 22)
}
