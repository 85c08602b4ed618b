package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	"github.com/fixora-app/fixora/internal/shared/config"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

type recordedPut struct {
	path        string
	contentType string
	body        []byte
}

func fakeBucket(t *testing.T) (*httptest.Server, func() []recordedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []recordedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method == http.MethodPut {
			mu.Lock()
			puts = append(puts, recordedPut{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body})
			mu.Unlock()
		}
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedPut {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedPut(nil), puts...)
	}
}

func newTestUploader(endpoint string, maxBytes int64) *S3ImageUploader {
	return NewS3ImageUploader(config.StorageConfig{
		Endpoint:        endpoint,
		Region:          "auto",
		Bucket:          "complaints",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		PublicBaseURL:   "https://cdn.fixora.test/",
		MaxImageBytes:   maxBytes,
		ForcePathStyle:  true,
	}, logger.NewNopLogger())
}

func TestS3ImageUploader_Upload(t *testing.T) {
	srv, puts := fakeBucket(t)
	uploader := newTestUploader(srv.URL, 1024)

	url, err := uploader.UploadImage(context.Background(), usecases.ImageUpload{
		Filename:    "tap.png",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte("\x89PNG")),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.fixora.test/complaints/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	got := puts()
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0].path, "/complaints/complaints/"), got[0].path)
	assert.Equal(t, "image/png", got[0].contentType)
	assert.Equal(t, []byte("\x89PNG"), got[0].body)
}

func TestS3ImageUploader_Rejects(t *testing.T) {
	srv, puts := fakeBucket(t)
	uploader := newTestUploader(srv.URL, 8)

	tests := []struct {
		name   string
		upload usecases.ImageUpload
	}{
		{"pdf", usecases.ImageUpload{ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf")}},
		{"declared too large", usecases.ImageUpload{ContentType: "image/jpeg", Size: 9, Body: strings.NewReader("x")}},
		{"actually too large", usecases.ImageUpload{ContentType: "image/jpeg", Size: 1, Body: strings.NewReader("123456789")}},
		{"empty", usecases.ImageUpload{ContentType: "image/jpeg", Size: 0, Body: strings.NewReader("")}},
		{"no body", usecases.ImageUpload{ContentType: "image/gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uploader.UploadImage(context.Background(), tt.upload)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
	assert.Empty(t, puts())
}

func TestS3ImageUploader_StoreFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestUploader(srv.URL, 1024).UploadImage(context.Background(), usecases.ImageUpload{
		ContentType: "image/webp; charset=binary",
		Size:        2,
		Body:        strings.NewReader("ok"),
	})
	require.Error(t, err)
	assert.False(t, errors.IsValidationError(err))
}
