package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"inventory-service/internal/admin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintAdminConfigTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAdminConfig(&buf, admin.Default(), false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "MODEL"))
	assert.Contains(t, out, "product_line (stacked) -> product_image (stacked)")
	assert.Contains(t, out, "name, parent_name")
}

func TestPrintAdminConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAdminConfig(&buf, admin.Default(), true))

	var models []admin.ModelAdmin
	require.NoError(t, json.Unmarshal(buf.Bytes(), &models))
	assert.Len(t, models, 6)
}

func TestMigrateDryRun(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"migrate", "--dry-run"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "CREATE TABLE IF NOT EXISTS product_images")
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "")
	rootCmd.SetArgs([]string{"token"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}

func TestTokenIssues(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"token", "--ttl", "1m"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(buf.String()), "."))
}
