package db

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"gyangroup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_UnsupportedURL(t *testing.T) {
	_, err := Open("mysql://localhost/site", discardLogger())
	assert.Error(t, err)
}

func TestOpen_SQLiteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site.db")
	conn, err := Open("sqlite://"+path, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { Close(conn) })

	require.NoError(t, Migrate(conn))
	assert.FileExists(t, path)
}

func TestMigrate_CreatesTables(t *testing.T) {
	conn, err := Open("sqlite://:memory:", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { Close(conn) })

	require.NoError(t, Migrate(conn))
	for _, table := range []string{"categories", "products", "blogs", "inquires"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestForeignKeyCascade(t *testing.T) {
	conn, err := Open("sqlite://:memory:", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { Close(conn) })
	require.NoError(t, Migrate(conn))

	cat := models.Category{Name: "Dye Intermediates", Slug: "dye-intermediates"}
	require.NoError(t, conn.Create(&cat).Error)
	prod := models.Product{Slug: "h-acid", Title: "H-Acid", CategoryID: cat.ID}
	require.NoError(t, conn.Create(&prod).Error)

	require.NoError(t, conn.Exec("DELETE FROM categories WHERE id = ?", cat.ID).Error)

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
