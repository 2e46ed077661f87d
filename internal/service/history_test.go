package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/convocraft/backend/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHistoryService_AppendAndList(t *testing.T) {
	st := newTestStore(t)
	signupAnn(t, st)
	ctx := context.Background()

	user, err := st.GetByEmail("ann@x.com")
	assert.NoError(t, err)

	svc := NewHistoryService(st)

	const n = 5
	for i := 0; i < n; i++ {
		err := svc.Append(ctx, user.ID, fmt.Sprintf("msg %d", i), fmt.Sprintf("reply %d", i))
		assert.NoError(t, err)
	}

	entries, err := svc.List(ctx, user.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, n)

	// Oldest first, in append order
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("msg %d", i), e.UserMessage)
		assert.Equal(t, fmt.Sprintf("reply %d", i), e.AIReply)
		assert.False(t, e.Timestamp.IsZero())
		if i > 0 {
			assert.False(t, e.Timestamp.Before(entries[i-1].Timestamp))
		}
	}
}

func TestHistoryService_Append_UnknownUserIsNoOp(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	// Deliberate swallow: the exchange already happened
	err := svc.Append(context.Background(), uuid.New(), "msg", "reply")
	assert.NoError(t, err)
	assert.Equal(t, 0, st.Count())
}

func TestHistoryService_List_UnknownUser(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	entries, err := svc.List(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHistoryService_Append_Durable(t *testing.T) {
	st := newTestStore(t)
	signupAnn(t, st)
	ctx := context.Background()

	user, err := st.GetByEmail("ann@x.com")
	assert.NoError(t, err)

	svc := NewHistoryService(st)
	assert.NoError(t, svc.Append(ctx, user.ID, "hi", "hello"))

	reloaded, err := store.Open(st.Path())
	assert.NoError(t, err)

	entries, err := NewHistoryService(reloaded).List(ctx, user.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "hi", entries[0].UserMessage)
	assert.Equal(t, "hello", entries[0].AIReply)
}
