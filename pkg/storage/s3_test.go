package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory, keyed by "bucket/key".
type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Bucket+"/"+*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	data, ok := f.objects[*in.CopySource]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	bucket, _, _ := strings.Cut(*in.CopySource, "/")
	f.objects[bucket+"/"+*in.Key] = data
	return &s3.CopyObjectOutput{}, nil
}

func TestS3Disk_RoundTripWithPrefix(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{}}
	disk := newS3Disk(fake, "market", "/mercado/")

	require.NoError(t, disk.Put(ctx, "state.json", []byte("{}")))
	assert.Contains(t, fake.objects, "market/mercado/state.json")

	got, err := disk.Get(ctx, "state.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))

	ok, err := disk.Exists(ctx, "state.json")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, disk.Copy(ctx, "state.json", "state.json.bak"))
	assert.Contains(t, fake.objects, "market/mercado/state.json.bak")

	require.NoError(t, disk.Delete(ctx, "state.json"))
	ok, err = disk.Exists(ctx, "state.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3Disk_MissingMapsToErrNotFound(t *testing.T) {
	disk := newS3Disk(&fakeS3{objects: map[string][]byte{}}, "market", "")

	_, err := disk.Get(context.Background(), "absent.json")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	err = disk.Copy(context.Background(), "absent.json", "x.json")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}
