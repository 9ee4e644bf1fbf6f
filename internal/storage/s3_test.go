package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

func testConfig(endpoint string) S3Config {
	return S3Config{
		Endpoint:  endpoint,
		Region:    "auto",
		Bucket:    "condominio",
		AccessKey: "chave",
		SecretKey: "segredo",
	}
}

func TestS3UploadSucesso(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.PublicDomain = "https://cdn.residencialaurora.com.br"
	cfg.HTTPClient = srv.Client()

	up, err := NewS3Uploader(cfg)
	require.NoError(t, err)

	res, err := up.Upload(context.Background(), UploadInput{
		Key:         "uploads/2026/08/foto.jpg",
		Body:        []byte("conteudo"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.Equal(t, "/condominio/uploads/2026/08/foto.jpg", gotPath)
	assert.Contains(t, gotAuth, "AWS4-HMAC-SHA256")
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.residencialaurora.com.br/uploads/2026/08/foto.jpg", res.URL)
}

func TestS3UploadFalhaClassificadaComoRemota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "AccessDenied", http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.HTTPClient = srv.Client()

	up, err := NewS3Uploader(cfg)
	require.NoError(t, err)

	_, err = up.Upload(context.Background(), UploadInput{Key: "k", Body: []byte("x")})
	assert.Equal(t, apperr.CodeRemote, apperr.CodeOf(err))

	// endpoint inalcançável também é falha remota, não interna
	srv.Close()
	_, err = up.Upload(context.Background(), UploadInput{Key: "k", Body: []byte("x")})
	assert.Equal(t, apperr.CodeRemote, apperr.CodeOf(err))
}

func TestS3UploadEntradaInvalida(t *testing.T) {
	up, err := NewS3Uploader(testConfig("https://s3.example.com"))
	require.NoError(t, err)

	_, err = up.Upload(context.Background(), UploadInput{Key: "", Body: []byte("x")})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = up.Upload(context.Background(), UploadInput{Key: "k"})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestS3ConfigInvalida(t *testing.T) {
	cfg := testConfig("s3.example.com") // sem protocolo
	_, err := NewS3Uploader(cfg)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestNoopUploaderSemBackend(t *testing.T) {
	_, err := NoopUploader{}.Upload(context.Background(), UploadInput{Key: "k", Body: []byte("x")})
	assert.Equal(t, apperr.CodeRemote, apperr.CodeOf(err))
}
