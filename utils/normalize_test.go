package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Quilpue", FoldAccents("Quilpué"))
	assert.Equal(t, "Valparaiso", FoldAccents("Valparaíso"))
	assert.Equal(t, "informatica", FoldAccents("informática"))
	assert.Equal(t, "sin cambios", FoldAccents("sin cambios"))
}

func TestAccentInsensitivePattern(t *testing.T) {
	pattern := AccentInsensitivePattern("Valparaíso")
	re, err := regexp.Compile("(?i)" + pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("Valparaíso"))
	assert.True(t, re.MatchString("valparaiso"))
	assert.True(t, re.MatchString("VALPARAISO"))
}

func TestAccentInsensitivePatternEnie(t *testing.T) {
	re, err := regexp.Compile("(?i)" + AccentInsensitivePattern("año"))
	require.NoError(t, err)
	assert.True(t, re.MatchString("año 2025"))
	assert.True(t, re.MatchString("ano 2025"))
}

func TestAccentInsensitivePatternQuotesMeta(t *testing.T) {
	// Regex metacharacters in the query must be taken literally.
	re, err := regexp.Compile(AccentInsensitivePattern("hp (usado)"))
	require.NoError(t, err)
	assert.True(t, re.MatchString("hp (usado)"))
	assert.False(t, re.MatchString("hp usado"))
}

func TestValidIPv4(t *testing.T) {
	assert.True(t, ValidIPv4("192.168.1.10"))
	assert.True(t, ValidIPv4("10.0.0.1"))
	assert.False(t, ValidIPv4("999.1.1.1"))
	assert.False(t, ValidIPv4("192.168.1"))
	assert.False(t, ValidIPv4("::1"))
	assert.False(t, ValidIPv4("no-es-ip"))
	assert.False(t, ValidIPv4(""))
}
