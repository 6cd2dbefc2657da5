package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty_portal/internal/domain"
)

func TestMessageStore(t *testing.T) {
	s := NewMessageStore(openTestDB(t))
	ctx := context.Background()

	for _, subj := range []string{"Viewing", "Pricing"} {
		require.NoError(t, s.Create(ctx, &domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: subj, Message: "Hello"}))
	}

	msgs, total, err := s.List(ctx, nil, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Pricing", msgs[0].Subject)

	read, err := s.SetRead(ctx, msgs[1].ID, true)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread := false
	msgs, total, err = s.List(ctx, &unread, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Pricing", msgs[0].Subject)
}
