package filex

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state", "client", "profilespaces.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	require.NoError(t, EnsureParentDir(path), "second call is a no-op")
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("profilespaces.db"))
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	err := EnsureParentDir(filepath.Join(blocker, "client.db"))
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestOpenImage(t *testing.T) {
	tmp := t.TempDir()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(tmp, "me.png")
		require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

		img, err := OpenImage(path, MaxImageBytes)
		require.NoError(t, err)
		defer img.Close()

		require.Equal(t, "me.png", img.Name)
		require.Equal(t, "image/png", img.ContentType)

		data, err := io.ReadAll(img)
		require.NoError(t, err)
		require.Equal(t, pngBytes, data, "reader starts at the beginning")
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(tmp, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello there"), 0o600))

		_, err := OpenImage(path, MaxImageBytes)
		require.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(tmp, "big.png")
		require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

		_, err := OpenImage(path, 10)
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := OpenImage(filepath.Join(tmp, "nope.png"), MaxImageBytes)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
