package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	k := NewKey("avatars", ".PNG")
	assert.True(t, strings.HasPrefix(k, "avatars/"))
	assert.True(t, strings.HasSuffix(k, ".png"))
	assert.NotEqual(t, k, NewKey("avatars", "png"))
	assert.True(t, strings.HasSuffix(NewKey("x", ""), ".bin"))
}

func TestNormalizeKey_NoTraversal(t *testing.T) {
	assert.Equal(t, "etc/passwd", normalizeKey("../../etc/passwd"))
	assert.Equal(t, "a/b.png", normalizeKey(`a\b.png`))
	assert.Equal(t, "", normalizeKey("  "))
	assert.Equal(t, "", normalizeKey("/"))
}

func TestLocalStore_PutDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStore(root, "http://cdn.local/storage/")
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "stories/a.png", []byte("img"), "image/png"))
	data, err := os.ReadFile(filepath.Join(root, "stories", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, "http://cdn.local/storage/stories/a.png", s.URL("stories/a.png"))

	require.NoError(t, s.Delete(ctx, "stories/a.png"))
	_, err = os.Stat(filepath.Join(root, "stories", "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, "stories/a.png"), "deleting a missing object is not an error")
	assert.ErrorIs(t, s.Put(ctx, "", nil, ""), ErrInvalidKey)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3Store_PutDelete(t *testing.T) {
	ctx := context.Background()
	api := &fakeS3{}
	s := newS3Store(api, "bucket", "", "eu-west-1", "", false)

	require.NoError(t, s.Put(ctx, "/avatars/x.jpg", []byte("abc"), "image/jpeg"))
	require.Len(t, api.puts, 1)
	assert.Equal(t, "avatars/x.jpg", aws.ToString(api.puts[0].Key))
	assert.Equal(t, "bucket", aws.ToString(api.puts[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(api.puts[0].ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(api.puts[0].ContentLength))

	require.NoError(t, s.Delete(ctx, "avatars/x.jpg"))
	require.Len(t, api.deletes, 1)

	api.err = errors.New("boom")
	assert.Error(t, s.Put(ctx, "k", nil, ""))
}

func TestS3Store_URL(t *testing.T) {
	assert.Equal(t, "https://bucket.s3.eu-west-1.amazonaws.com/a/b%20c.png",
		newS3Store(nil, "bucket", "", "eu-west-1", "", false).URL("a/b c.png"))
	assert.Equal(t, "http://minio:9000/bucket/a.png",
		newS3Store(nil, "bucket", "http://minio:9000", "us-east-1", "", true).URL("a.png"))
	assert.Equal(t, "https://img.example.com/a.png",
		newS3Store(nil, "bucket", "", "us-east-1", "https://img.example.com/", false).URL("a.png"))
}
