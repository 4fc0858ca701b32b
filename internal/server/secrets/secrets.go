// Package secrets resolves sensitive settings from Google Secret Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"google.golang.org/api/option"
)

var ErrEmptySecret = errors.New("secret payload is empty")

type versionAccessor interface {
	Access(ctx context.Context, name string) ([]byte, error)
	Close() error
}

type clientAccessor struct {
	client *secretmanager.Client
}

func (a clientAccessor) Access(ctx context.Context, name string) ([]byte, error) {
	resp, err := a.client.AccessSecretVersion(ctx, &smpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return resp.GetPayload().GetData(), nil
}

func (a clientAccessor) Close() error {
	return a.client.Close()
}

var newAccessor = func(ctx context.Context, opts ...option.ClientOption) (versionAccessor, error) {
	c, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return clientAccessor{client: c}, nil
}

// VersionName completes a secret resource name with "/versions/latest"
// unless a version is already given.
func VersionName(name string) string {
	if strings.Contains(name, "/versions/") {
		return name
	}
	return strings.TrimRight(name, "/") + "/versions/latest"
}

// ResolveSecretKey replaces cfg.SecretKey with the payload of
// cfg.SecretKeyName. It does nothing when no secret name is configured.
func ResolveSecretKey(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) error {
	if cfg.SecretKeyName == "" {
		return nil
	}

	acc, err := newAccessor(ctx, opts...)
	if err != nil {
		return fmt.Errorf("secret manager client: %w", err)
	}
	defer acc.Close()

	data, err := acc.Access(ctx, VersionName(cfg.SecretKeyName))
	if err != nil {
		return fmt.Errorf("access secret %s: %w", cfg.SecretKeyName, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return fmt.Errorf("%s: %w", cfg.SecretKeyName, ErrEmptySecret)
	}
	cfg.SecretKey = key
	return nil
}
