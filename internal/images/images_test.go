package images

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey(12, "image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "products/12/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, err = ObjectKey(12, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/images/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "products/1/a.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/images/products/1/a.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "products", "1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	_, err = store.Put(context.Background(), "../escape.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewS3Store_Validation(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)

	_, err = NewS3Store(context.Background(), S3Config{Bucket: "jewelry"})
	assert.Error(t, err)

	s, err := NewS3Store(context.Background(), S3Config{Bucket: "jewelry", AccessKey: "a", SecretKey: "b", Endpoint: "http://localhost:9000", PathStyle: true})
	require.NoError(t, err)
	assert.Equal(t, "https://jewelry.s3.us-east-1.amazonaws.com", s.publicURL)
}
