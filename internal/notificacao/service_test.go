package notificacao

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type fakeStore struct {
	rows map[uuid.UUID]*Notificacao
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[uuid.UUID]*Notificacao)}
}

func (f *fakeStore) seed(destino string, lidaPor ...string) *Notificacao {
	n := &Notificacao{ID: uuid.New(), Mensagem: "aviso", Destino: destino, LidaPor: lidaPor}
	f.rows[n.ID] = n
	return n
}

func (f *fakeStore) visivel(n *Notificacao, userID string) bool {
	return n.Destino == DestinoTodos || n.Destino == userID
}

func (f *fakeStore) Insert(ctx context.Context, mensagem, destino string, chamadoID *uuid.UUID) (*Notificacao, error) {
	n := &Notificacao{ID: uuid.New(), Mensagem: mensagem, Destino: destino, ChamadoID: chamadoID, LidaPor: []string{}}
	f.rows[n.ID] = n
	return n, nil
}

func (f *fakeStore) ListFor(ctx context.Context, userID string) ([]Notificacao, error) {
	out := make([]Notificacao, 0)
	for _, n := range f.rows {
		if f.visivel(n, userID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var updated int64
	for _, n := range f.rows {
		if f.visivel(n, userID) && !n.LidaPara(userID) {
			n.LidaPor = append(n.LidaPor, userID)
			updated++
		}
	}
	return updated, nil
}

func (f *fakeStore) UnreadCount(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.rows {
		if f.visivel(n, userID) && !n.LidaPara(userID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) DeleteAllFor(ctx context.Context, userID string, incluirBroadcast bool) (int64, error) {
	var deleted int64
	for id, n := range f.rows {
		if n.Destino == userID || (incluirBroadcast && n.Destino == DestinoTodos) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeStore) Get(ctx context.Context, id uuid.UUID) (*Notificacao, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

type fakePublisher struct{ published []realtime.Collection }

func (f *fakePublisher) Publish(ctx context.Context, coll realtime.Collection) {
	f.published = append(f.published, coll)
}

func newTestService(repo *fakeStore, changes *fakePublisher) *Service {
	return NewService(repo, changes, nil, zerolog.Nop())
}

func TestMarkAllReadIdempotente(t *testing.T) {
	userID := uuid.New()
	repo := newFakeStore()
	repo.seed(DestinoTodos)
	repo.seed(userID.String())
	repo.seed(uuid.NewString()) // de outro morador, fora do alcance

	changes := &fakePublisher{}
	svc := newTestService(repo, changes)

	updated, err := svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.Len(t, changes.published, 1)

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// repetir não marca de novo nem gera evento
	updated, err = svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Len(t, changes.published, 1)
}

func TestDeleteAllPreservaBroadcastsParaMorador(t *testing.T) {
	userID := uuid.New()
	repo := newFakeStore()
	broadcast := repo.seed(DestinoTodos)
	repo.seed(userID.String())
	repo.seed(userID.String())

	svc := newTestService(repo, &fakePublisher{})

	deleted, err := svc.DeleteAll(context.Background(), userID, "MORADOR")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// a linha compartilhada continua visível para todo o condomínio
	_, err = repo.Get(context.Background(), broadcast.ID)
	assert.NoError(t, err)
}

func TestDeleteAllGestaoIncluiBroadcasts(t *testing.T) {
	userID := uuid.New()
	repo := newFakeStore()
	repo.seed(DestinoTodos)
	repo.seed(userID.String())

	svc := newTestService(repo, &fakePublisher{})

	deleted, err := svc.DeleteAll(context.Background(), userID, "SINDICO")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Empty(t, repo.rows)
}

func TestDeleteBroadcastNegadoParaMorador(t *testing.T) {
	userID := uuid.New()
	repo := newFakeStore()
	broadcast := repo.seed(DestinoTodos)

	svc := newTestService(repo, &fakePublisher{})

	err := svc.Delete(context.Background(), userID, "MORADOR", broadcast.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	err = svc.Delete(context.Background(), userID, "SINDICO", broadcast.ID)
	assert.NoError(t, err)
}
