package chamado

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type fakeStore struct {
	chamados    map[uuid.UUID]*Chamado
	comentarios []Comentario
}

func newFakeStore(itens ...*Chamado) *fakeStore {
	f := &fakeStore{chamados: make(map[uuid.UUID]*Chamado)}
	for _, c := range itens {
		f.chamados[c.ID] = c
	}
	return f
}

func (f *fakeStore) List(ctx context.Context) ([]Chamado, error) {
	out := make([]Chamado, 0, len(f.chamados))
	for _, c := range f.chamados {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id uuid.UUID) (*Chamado, error) {
	c, ok := f.chamados[id]
	if !ok {
		return nil, ErrNotFound
	}
	copia := *c
	copia.Comentarios = append([]Comentario(nil), f.comentarios...)
	return &copia, nil
}

func (f *fakeStore) Insert(ctx context.Context, in CreateInput) (*Chamado, error) {
	c := &Chamado{ID: uuid.New(), Titulo: in.Titulo, Descricao: in.Descricao, Status: StatusPendente}
	f.chamados[c.ID] = c
	return c, nil
}

func (f *fakeStore) Update(ctx context.Context, in UpdateInput) error {
	c, ok := f.chamados[in.ID]
	if !ok {
		return ErrNotFound
	}
	if in.Titulo != nil {
		c.Titulo = *in.Titulo
	}
	if in.Descricao != nil {
		c.Descricao = *in.Descricao
	}
	if in.RespostaAdmin != nil {
		c.RespostaAdmin = in.RespostaAdmin
	}
	return nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	c, ok := f.chamados[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeStore) ToggleLike(ctx context.Context, id uuid.UUID, userID string) ([]string, error) {
	c, ok := f.chamados[id]
	if !ok {
		return nil, ErrNotFound
	}
	for i, l := range c.Likes {
		if l == userID {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			return c.Likes, nil
		}
	}
	c.Likes = append(c.Likes, userID)
	return c.Likes, nil
}

func (f *fakeStore) InsertComentario(ctx context.Context, in CommentInput) (*Comentario, error) {
	com := Comentario{ID: uuid.New(), ChamadoID: in.ChamadoID, AutorNome: in.AutorNome, Corpo: in.Corpo, Sistema: in.Sistema}
	f.comentarios = append(f.comentarios, com)
	return &com, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.chamados[id]; !ok {
		return ErrNotFound
	}
	delete(f.chamados, id)
	return nil
}

type fakePublisher struct{ published []realtime.Collection }

func (f *fakePublisher) Publish(ctx context.Context, coll realtime.Collection) {
	f.published = append(f.published, coll)
}

type fakeNotifier struct{ mensagens []string }

func (f *fakeNotifier) Broadcast(ctx context.Context, mensagem string, chamadoID *uuid.UUID) {
	f.mensagens = append(f.mensagens, mensagem)
}

func strPtr(s string) *string { return &s }

func TestChangeStatusComJustificativa(t *testing.T) {
	existente := &Chamado{ID: uuid.New(), Titulo: "Portão quebrado", Status: StatusPendente}
	repo := newFakeStore(existente)
	svc := NewService(repo, &fakePublisher{}, &fakeNotifier{})

	updated, err := svc.ChangeStatus(context.Background(), "SINDICO", existente.ID, StatusEmAndamento, strPtr("orçamento aprovado"))
	require.NoError(t, err)

	assert.Equal(t, StatusEmAndamento, updated.Status)

	// a justificativa vira comentário de sistema, não resposta da gestão
	assert.Nil(t, updated.RespostaAdmin)
	require.Len(t, repo.comentarios, 1)
	com := repo.comentarios[0]
	assert.True(t, com.Sistema)
	assert.Equal(t, "Sistema", com.AutorNome)
	assert.Contains(t, com.Corpo, "Em andamento")
	assert.Contains(t, com.Corpo, "orçamento aprovado")
}

func TestChangeStatusSemJustificativa(t *testing.T) {
	existente := &Chamado{ID: uuid.New(), Titulo: "Lâmpada queimada", Status: StatusPendente}
	repo := newFakeStore(existente)
	svc := NewService(repo, &fakePublisher{}, &fakeNotifier{})

	updated, err := svc.ChangeStatus(context.Background(), "GESTAO", existente.ID, StatusConcluido, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusConcluido, updated.Status)
	assert.Empty(t, repo.comentarios)
}

func TestChangeStatusNegadoParaMorador(t *testing.T) {
	existente := &Chamado{ID: uuid.New(), Status: StatusPendente}
	repo := newFakeStore(existente)
	svc := NewService(repo, &fakePublisher{}, &fakeNotifier{})

	_, err := svc.ChangeStatus(context.Background(), "MORADOR", existente.ID, StatusConcluido, nil)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
	assert.Equal(t, StatusPendente, existente.Status)
}

func TestChangeStatusInvalido(t *testing.T) {
	existente := &Chamado{ID: uuid.New(), Status: StatusPendente}
	repo := newFakeStore(existente)
	svc := NewService(repo, &fakePublisher{}, &fakeNotifier{})

	_, err := svc.ChangeStatus(context.Background(), "SINDICO", existente.ID, "inexistente", nil)
	assert.ErrorIs(t, err, ErrStatusInvalido)
}

func TestUpdateGravaRespostaAdmin(t *testing.T) {
	existente := &Chamado{ID: uuid.New(), Titulo: "Vazamento", Status: StatusPendente}
	repo := newFakeStore(existente)
	svc := NewService(repo, &fakePublisher{}, &fakeNotifier{})

	updated, err := svc.Update(context.Background(), "SINDICO", UpdateInput{
		ID:            existente.ID,
		RespostaAdmin: strPtr("equipe acionada"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.RespostaAdmin)
	assert.Equal(t, "equipe acionada", *updated.RespostaAdmin)
}
