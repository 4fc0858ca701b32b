package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService() *ProfileService {
	return NewProfileService(memory.NewManager(), &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	})
}

func TestProfileService_CreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newProfileService()

	p, err := s.Create(ctx, "ops", []byte("s3cret"))
	require.NoError(t, err)
	assert.Len(t, p.Token, 2*tokenBytes)
	assert.NotEqual(t, []byte("s3cret"), p.SecretHash)

	jwt, err := s.Authenticate(ctx, "ops", p.Token, []byte("s3cret"))
	require.NoError(t, err)

	owner, err := s.Verify(jwt)
	require.NoError(t, err)
	assert.Equal(t, "ops", owner)
}

func TestProfileService_AuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	s := newProfileService()
	p, err := s.Create(ctx, "ops", []byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name, owner, token, secret string
	}{
		{"unknown owner", "dev", p.Token, "s3cret"},
		{"wrong token", "ops", "deadbeef", "s3cret"},
		{"wrong secret", "ops", p.Token, "guess"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Authenticate(ctx, tt.owner, tt.token, []byte(tt.secret))
			assert.ErrorIs(t, err, common.ErrorUnauthorized)
		})
	}
}

func TestProfileService_RecreateRotatesToken(t *testing.T) {
	ctx := context.Background()
	s := newProfileService()

	first, err := s.Create(ctx, "ops", []byte("one"))
	require.NoError(t, err)
	second, err := s.Create(ctx, "ops", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = s.Authenticate(ctx, "ops", first.Token, []byte("one"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.Authenticate(ctx, "ops", second.Token, []byte("two"))
	assert.NoError(t, err)
}

func TestProfileService_CreateValidation(t *testing.T) {
	_, err := newProfileService().Create(context.Background(), "ops", nil)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestProfileService_VerifyGarbage(t *testing.T) {
	_, err := newProfileService().Verify("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestProfileService_CreateRejectsPathOwner(t *testing.T) {
	ctx := context.Background()
	s := newProfileService()

	_, err := s.Create(ctx, "ops/admin", []byte("s3cret"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.repomanager.Profiles().GetByOwner(ctx, "ops/admin")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
