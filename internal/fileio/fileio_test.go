package fileio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, time.March, 2, 10, 4, 5, 0, time.UTC)

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "items")

	path, err := saveToFile(target, []string{"#1", "#2"}, at)
	require.NoError(t, err)
	assert.Equal(t, target+".txt", path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#1\n#2\n", string(content))

	again, err := saveToFile(target, []string{"#3"}, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "items_20240302T100405Z.txt"), again)
}

func TestGetSaveCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.log")
	msg := GetSaveCommand(target, []string{"a"})().(SaveCompleteMsg)
	assert.Empty(t, msg.ErrMessage)
	assert.Equal(t, target, msg.FullPath)
	assert.Contains(t, msg.SuccessMessage, "Saved 1 items")
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := resolvePath("~/saved/items", "stamp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "saved", "items.txt"), path)

	path, err = resolvePath("", "stamp")
	require.NoError(t, err)
	assert.Equal(t, "uiscroll_stamp.txt", filepath.Base(path))
	assert.True(t, filepath.IsAbs(path))
}
