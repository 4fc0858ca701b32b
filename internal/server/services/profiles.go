package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/server/auth"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the entropy of a generated profile token.
const tokenBytes = 16

// ProfileService manages API credential profiles and exchanges them for
// short-lived bearer tokens.
type ProfileService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

func NewProfileService(m repomanager.RepositoryManager, cfg *config.Config) *ProfileService {
	return &ProfileService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// Create issues a fresh token for owner and stores secret as a bcrypt hash,
// replacing any previous profile of the owner.
func (s *ProfileService) Create(ctx context.Context, owner string, secret []byte) (*models.Profile, error) {
	if err := required(field{"owner", owner}, field{"secret", string(secret)}); err != nil {
		return nil, err
	}
	if err := identifier(field{"owner", owner}); err != nil {
		return nil, err
	}
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{Owner: owner, Token: token, SecretHash: hash, CreatedAt: s.now().UTC()}
	if err := s.repomanager.Profiles().Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Authenticate checks the owner's token and secret and returns a signed
// access token. Every mismatch is common.ErrorUnauthorized.
func (s *ProfileService) Authenticate(ctx context.Context, owner, token string, secret []byte) (string, error) {
	p, err := s.repomanager.Profiles().GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if subtle.ConstantTimeCompare([]byte(p.Token), []byte(token)) != 1 {
		return "", common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(p.SecretHash, secret); err != nil {
		return "", common.ErrorUnauthorized
	}

	access, err := auth.GenerateToken(owner, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}

// Verify returns the owner of a bearer token issued by Authenticate.
func (s *ProfileService) Verify(token string) (string, error) {
	return auth.GetOwnerFromToken(token, s.jwtSecret)
}
