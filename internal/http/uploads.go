package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/storage"
)

const maxUploadBytes = 15 << 20

// Upload envia um arquivo para o armazenamento de objetos e devolve a URL
// pública. A publicação do registro (documento, foto) é um passo separado.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo muito grande ou form inválido", nil)
		return
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "campo 'arquivo' ausente", nil)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "falha ao ler arquivo", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("uploads/%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.storage.Upload(r.Context(), storage.UploadInput{
		Key:         key,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"url":     result.URL,
		"nome":    header.Filename,
		"tipo":    contentType,
		"tamanho": len(body),
	})
}
