package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	out       chan Message
	closeOnce sync.Once
}

func (s *fakeSubscriber) Messages() <-chan Message { return s.out }
func (s *fakeSubscriber) Close() error {
	s.closeOnce.Do(func() { close(s.out) })
	return nil
}

type fakeBroker struct {
	mu   sync.Mutex
	subs []*fakeSubscriber
}

func (b *fakeBroker) Publish(ctx context.Context, channel, payload string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		sub.out <- Message{Channel: channel, Payload: payload}
	}
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channels ...string) Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &fakeSubscriber{out: make(chan Message, 16)}
	b.subs = append(b.subs, sub)
	return sub
}

type memLoader struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *memLoader) set(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = entries
}

func (l *memLoader) load(ctx context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func newTestHub(t *testing.T) (*Hub, *fakeBroker, *memLoader) {
	t.Helper()
	broker := &fakeBroker{}
	loader := &memLoader{entries: []Entry{{ID: "a", Value: "um"}}}
	hub := NewHub(broker, zerolog.Nop())
	hub.Register(CollectionAvisos, loader.load)
	require.NoError(t, hub.Start(context.Background()))
	t.Cleanup(hub.Stop)
	return hub, broker, loader
}

func waitSnapshot(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.C:
		require.True(t, ok, "assinatura fechada")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot não chegou")
		return Snapshot{}
	}
}

func TestHubDeliversInitialSnapshot(t *testing.T) {
	hub, _, _ := newTestHub(t)

	sub, err := hub.Subscribe(CollectionAvisos)
	require.NoError(t, err)
	defer sub.Close()

	snap := waitSnapshot(t, sub)
	assert.Equal(t, CollectionAvisos, snap.Collection)
	assert.Equal(t, "um", snap.ByID["a"])
	assert.Len(t, snap.Entries, 1)
}

func TestHubReplacesSnapshotOnPublish(t *testing.T) {
	hub, _, loader := newTestHub(t)

	sub, err := hub.Subscribe(CollectionAvisos)
	require.NoError(t, err)
	defer sub.Close()

	first := waitSnapshot(t, sub)

	loader.set([]Entry{{ID: "a", Value: "um"}, {ID: "b", Value: "dois"}})
	hub.Publish(context.Background(), CollectionAvisos)

	var snap Snapshot
	for {
		snap = waitSnapshot(t, sub)
		if len(snap.Entries) == 2 {
			break
		}
	}
	assert.Greater(t, snap.Version, first.Version)
	assert.Equal(t, "dois", snap.ByID["b"])
}

func TestHubVersionMonotonic(t *testing.T) {
	hub, _, _ := newTestHub(t)

	sub, err := hub.Subscribe(CollectionAvisos)
	require.NoError(t, err)
	defer sub.Close()

	last := waitSnapshot(t, sub).Version
	for i := 0; i < 5; i++ {
		require.NoError(t, hub.Refresh(context.Background(), CollectionAvisos))
		snap := waitSnapshot(t, sub)
		assert.Greater(t, snap.Version, last)
		last = snap.Version
	}
}

func TestHubCoalescesForSlowConsumers(t *testing.T) {
	hub, _, loader := newTestHub(t)

	sub, err := hub.Subscribe(CollectionAvisos)
	require.NoError(t, err)
	defer sub.Close()

	// sem consumir, dispara várias atualizações; só a mais nova deve restar
	for i := 0; i < 10; i++ {
		loader.set([]Entry{{ID: "a", Value: fmt.Sprintf("v%d", i)}})
		require.NoError(t, hub.Refresh(context.Background(), CollectionAvisos))
	}

	snap := waitSnapshot(t, sub)
	assert.Equal(t, "v9", snap.ByID["a"])

	select {
	case extra, ok := <-sub.C:
		if ok {
			t.Fatalf("snapshot intermediário não coalescido: %+v", extra)
		}
	default:
	}
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	hub, _, _ := newTestHub(t)

	sub, err := hub.Subscribe(CollectionAvisos)
	require.NoError(t, err)

	sub.Close()
	sub.Close() // segunda chamada não deve panicar

	// canal fechado após Close
	for range sub.C {
	}

	// atualizações após o fechamento não podem entregar nada ao canal fechado
	require.NoError(t, hub.Refresh(context.Background(), CollectionAvisos))
}

func TestHubStopClosesSubscriptions(t *testing.T) {
	broker := &fakeBroker{}
	loader := &memLoader{entries: []Entry{{ID: "a", Value: 1}}}
	hub := NewHub(broker, zerolog.Nop())
	hub.Register(CollectionChamados, loader.load)
	require.NoError(t, hub.Start(context.Background()))

	sub, err := hub.Subscribe(CollectionChamados)
	require.NoError(t, err)

	hub.Stop()
	hub.Stop() // idempotente

	for range sub.C {
	}

	_, err = hub.Subscribe(CollectionChamados)
	assert.ErrorIs(t, err, ErrHubStopped)

	// fechar após Stop continua seguro
	sub.Close()
}

func TestHubUnknownCollection(t *testing.T) {
	hub, _, _ := newTestHub(t)
	_, err := hub.Subscribe(Collection("inexistente"))
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestHubKeepsLastSnapshotAfterChannelDrop(t *testing.T) {
	hub, broker, _ := newTestHub(t)

	snap, ok := hub.Snapshot(CollectionAvisos)
	require.True(t, ok)

	// derruba o canal ativo; o hub deve manter o último snapshot
	broker.mu.Lock()
	for _, s := range broker.subs {
		_ = s.Close()
	}
	broker.mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	again, ok := hub.Snapshot(CollectionAvisos)
	require.True(t, ok)
	assert.Equal(t, snap.Version, again.Version)
}
