package notifications_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/serroba/wardrobe-go/internal/notifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	users     []string
	batches   [][]notifications.Notification
	listErr   error
	insertErr error
}

func (m *mockStore) ListUserIDs(_ context.Context, afterID string, limit int) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []string

	for _, id := range m.users {
		if id > afterID && len(out) < limit {
			out = append(out, id)
		}
	}

	return out, nil
}

func (m *mockStore) InsertBatch(_ context.Context, batch []notifications.Notification) error {
	if m.insertErr != nil {
		return m.insertErr
	}

	m.batches = append(m.batches, batch)

	return nil
}

func users(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("user-%03d", i)
	}

	slices.Sort(out)

	return out
}

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("n%d", n)
	}
}

func TestFanout_Handle(t *testing.T) {
	event := &notifications.BroadcastEvent{
		ID:     "b1",
		Title:  "Spring sale",
		Body:   "20% off outerwear",
		SentAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("inserts one notification per user in batches", func(t *testing.T) {
		store := &mockStore{users: users(7)}
		fanout := notifications.NewFanout(store, sequentialIDs(), 3, zap.NewNop())

		err := fanout.Handle(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, store.batches, 3)
		assert.Len(t, store.batches[0], 3)
		assert.Len(t, store.batches[1], 3)
		assert.Len(t, store.batches[2], 1)

		seen := map[string]bool{}

		for _, batch := range store.batches {
			for _, n := range batch {
				assert.Equal(t, "b1", n.BroadcastID)
				assert.Equal(t, "Spring sale", n.Title)
				assert.Equal(t, event.SentAt, n.CreatedAt)
				assert.False(t, seen[n.UserID], "user %s notified twice", n.UserID)
				seen[n.UserID] = true
			}
		}

		assert.Len(t, seen, 7)
	})

	t.Run("exact multiple of batch size ends cleanly", func(t *testing.T) {
		store := &mockStore{users: users(6)}

		err := notifications.NewFanout(store, sequentialIDs(), 3, zap.NewNop()).Handle(context.Background(), event)

		require.NoError(t, err)
		assert.Len(t, store.batches, 2)
	})

	t.Run("no users inserts nothing", func(t *testing.T) {
		store := &mockStore{}

		err := notifications.NewFanout(store, sequentialIDs(), 0, zap.NewNop()).Handle(context.Background(), event)

		require.NoError(t, err)
		assert.Empty(t, store.batches)
	})

	t.Run("propagates list errors", func(t *testing.T) {
		store := &mockStore{listErr: errors.New("db down")}

		err := notifications.NewFanout(store, sequentialIDs(), 3, zap.NewNop()).Handle(context.Background(), event)

		assert.ErrorContains(t, err, "db down")
	})

	t.Run("propagates insert errors", func(t *testing.T) {
		store := &mockStore{users: users(2), insertErr: errors.New("constraint")}

		err := notifications.NewFanout(store, sequentialIDs(), 3, zap.NewNop()).Handle(context.Background(), event)

		assert.ErrorContains(t, err, "constraint")
	})
}
