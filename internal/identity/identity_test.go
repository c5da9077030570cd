package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/model"
)

func TestContextSession(t *testing.T) {
	u := model.User{ID: "u-1", FirstName: "Ada", LastName: "Lovelace"}

	got, err := ContextSession{}.CurrentUser(WithUser(context.Background(), u))
	require.NoError(t, err)
	assert.Equal(t, u, *got)

	_, err = ContextSession{}.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestStaticSession(t *testing.T) {
	s := StaticSession{User: model.User{ID: "system", Email: "ops@lender.test"}}

	got, err := s.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "system", got.ID)
	assert.Equal(t, "ops@lender.test", got.FullName())
}
