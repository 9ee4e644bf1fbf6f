package storage

import (
	"context"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// NoopUploader é o backend padrão quando nenhum provedor foi configurado.
type NoopUploader struct{}

// Upload sempre falha, sinalizando que não há armazenamento de objetos.
func (NoopUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	return nil, apperr.New(apperr.CodeRemote, "armazenamento de objetos não configurado")
}
