package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewImageNameUnique(t *testing.T) {
	a := NewImageName("photo.jpg")
	b := NewImageName("photo.jpg")
	require.NotEqual(t, a, b)
	require.True(t, strings.HasSuffix(a, ".jpg"))
}

func TestNewImageNameKeepsOnlyExtension(t *testing.T) {
	name := NewImageName("My Holiday Photo.PNG")
	require.True(t, strings.HasSuffix(name, ".png"))
	require.NotContains(t, name, "Holiday")

	// no extension on the original is fine too
	require.NotEmpty(t, NewImageName("rawfile"))
}

func TestLocalServiceSaveImage(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewLocalService(dir)
	require.NoError(t, err)

	name := NewImageName("shirt.jpg")
	err = svc.SaveImage(context.Background(), name, "image/jpeg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))

	require.Equal(t, "/images/"+name, svc.ImageURL(name))
}

func TestLocalServiceStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewLocalService(dir)
	require.NoError(t, err)

	err = svc.SaveImage(context.Background(), "../escape.jpg", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.jpg"))
	require.True(t, os.IsNotExist(err))
}
