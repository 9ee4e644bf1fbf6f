package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndDrain(t *testing.T) {
	q := NewQueue(time.Minute)

	q.Push("u1", KindSuccess, "reserva confirmada")
	q.Push("u1", KindError, "área já reservada")
	q.Push("u2", KindSuccess, "voto registrado")

	msgs := q.Drain("u1")
	require.Len(t, msgs, 2)
	assert.Equal(t, KindSuccess, msgs[0].Kind)
	assert.Equal(t, "área já reservada", msgs[1].Text)

	// drenagem consome a fila
	assert.Empty(t, q.Drain("u1"))

	other := q.Drain("u2")
	require.Len(t, other, 1)
	assert.Equal(t, "voto registrado", other[0].Text)
}

func TestExpiredMessagesAreDropped(t *testing.T) {
	q := NewQueue(time.Minute)
	current := time.Now()
	q.now = func() time.Time { return current }

	q.Push("u1", KindSuccess, "antiga")
	current = current.Add(2 * time.Minute)
	q.Push("u1", KindSuccess, "recente")

	msgs := q.Drain("u1")
	require.Len(t, msgs, 1)
	assert.Equal(t, "recente", msgs[0].Text)
}

func TestSweepRemovesDeadQueues(t *testing.T) {
	q := NewQueue(time.Minute)
	current := time.Now()
	q.now = func() time.Time { return current }

	q.Push("fantasma", KindSuccess, "x")
	current = current.Add(5 * time.Minute)
	q.Push("ativo", KindSuccess, "y")

	q.mu.Lock()
	_, ghost := q.store["fantasma"]
	q.mu.Unlock()
	assert.False(t, ghost)
}
