package commands

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/envportal/internal/flows"
)

func TestPrintFlows(t *testing.T) {
	color.NoColor = true
	r, err := flows.NewRegistry(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	printFlows(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "passwordreset")
	assert.Contains(t, out, "/forgotpassword")
	assert.Contains(t, out, "required: displayName, email, password, confirmPassword")
	assert.Contains(t, out, "required: password\n")
	assert.Contains(t, out, "* username")
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("ENVPORTAL_TEST_VALUE", "")
	assert.Equal(t, "fallback", getenvDefault("ENVPORTAL_TEST_VALUE", "fallback"))
	t.Setenv("ENVPORTAL_TEST_VALUE", "set")
	assert.Equal(t, "set", getenvDefault("ENVPORTAL_TEST_VALUE", "fallback"))
}
