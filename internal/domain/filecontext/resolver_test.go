package filecontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/internal/domain/models"
	"standard-ai/pkg/logger"
)

type uploadCall struct {
	filename string
	data     string
	purpose  string
}

type fakeIngestor struct {
	calls []uploadCall
	err   error
}

func (f *fakeIngestor) UploadFile(_ context.Context, filename string, data []byte, purpose string) (models.FileContextRef, error) {
	f.calls = append(f.calls, uploadCall{filename: filename, data: string(data), purpose: purpose})
	if f.err != nil {
		return "", f.err
	}
	return models.FileContextRef(fmt.Sprintf("file-%d", len(f.calls))), nil
}

type fakeStore struct {
	objects map[string][]byte
}

func (s *fakeStore) Get(_ context.Context, name string) ([]byte, error) {
	data, ok := s.objects[name]
	if !ok {
		return nil, models.ErrNotFound
	}
	return data, nil
}

func (s *fakeStore) List(context.Context, string) ([]string, error) { return nil, nil }

func (s *fakeStore) Put(context.Context, string, []byte) error { return nil }

func (s *fakeStore) SignURL(context.Context, string, time.Duration) (string, error) { return "", nil }

type memoryCache struct {
	entries map[string]models.FileContextRef
}

func (c *memoryCache) Get(_ context.Context, key string) (models.FileContextRef, bool, error) {
	ref, ok := c.entries[key]
	return ref, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, ref models.FileContextRef) error {
	c.entries[key] = ref
	return nil
}

func TestBothPathsShareIngestStep(t *testing.T) {
	ingestor := &fakeIngestor{}
	store := &fakeStore{objects: map[string][]byte{"GA 1400.docx": []byte("stored")}}
	r := NewResolver(ingestor, store, nil, logger.Discard())

	ref, err := r.FromUpload(context.Background(), "local.txt", []byte("uploaded"))
	require.NoError(t, err)
	assert.Equal(t, models.FileContextRef("file-1"), ref)

	ref, err = r.FromStore(context.Background(), "GA 1400.docx")
	require.NoError(t, err)
	assert.Equal(t, models.FileContextRef("file-2"), ref)

	assert.Equal(t, []uploadCall{
		{filename: "local.txt", data: "uploaded", purpose: "file-extract"},
		{filename: "GA 1400.docx", data: "stored", purpose: "file-extract"},
	}, ingestor.calls)
}

func TestFromStoreNotFound(t *testing.T) {
	ingestor := &fakeIngestor{}
	r := NewResolver(ingestor, &fakeStore{objects: map[string][]byte{}}, nil, logger.Discard())

	_, err := r.FromStore(context.Background(), "missing.docx")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Empty(t, ingestor.calls)
}

func TestFromStoreWithoutStore(t *testing.T) {
	r := NewResolver(&fakeIngestor{}, nil, nil, logger.Discard())

	_, err := r.FromStore(context.Background(), "a.docx")
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
}

func TestUpstreamErrorPropagates(t *testing.T) {
	ingestor := &fakeIngestor{err: &models.UpstreamError{StatusCode: 400, Body: "bad file"}}
	r := NewResolver(ingestor, nil, nil, logger.Discard())

	_, err := r.FromUpload(context.Background(), "a.txt", []byte("x"))

	var upstream *models.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 400, upstream.StatusCode)
}

func TestInvalidInput(t *testing.T) {
	r := NewResolver(&fakeIngestor{}, &fakeStore{}, nil, logger.Discard())

	_, err := r.FromUpload(context.Background(), "", []byte("x"))
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = r.FromUpload(context.Background(), "a.txt", nil)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = r.FromStore(context.Background(), " ")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestCacheReusesRefForSameContent(t *testing.T) {
	ingestor := &fakeIngestor{}
	cache := &memoryCache{entries: map[string]models.FileContextRef{}}
	store := &fakeStore{objects: map[string][]byte{"a.txt": []byte("same")}}
	r := NewResolver(ingestor, store, cache, logger.Discard())

	first, err := r.FromUpload(context.Background(), "a.txt", []byte("same"))
	require.NoError(t, err)
	second, err := r.FromStore(context.Background(), "a.txt")
	require.NoError(t, err)
	third, err := r.FromUpload(context.Background(), "a.txt", []byte("changed"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, third)
	assert.Len(t, ingestor.calls, 2)
}
