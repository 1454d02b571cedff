package services

import (
	"context"
	"errors"

	"github.com/rohits-web03/codebox/internal/models"
	"github.com/rohits-web03/codebox/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// AccessGuard checks a supplied secret against a container's stored bcrypt
// hash. Every container mutation and secret-gated read goes through it.
type AccessGuard struct {
	store repositories.Store
	cost  int
}

func NewAccessGuard(store repositories.Store, cost int) *AccessGuard {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AccessGuard{store: store, cost: cost}
}

func (g *AccessGuard) HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), g.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authorize returns the container snapshot when secret matches. It fails with
// ErrNotFound when the container does not exist and ErrForbidden otherwise.
func (g *AccessGuard) Authorize(ctx context.Context, name, secret string) (*models.Container, error) {
	c, err := g.store.GetContainerByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get container", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.SecretHash), []byte(secret)); err != nil {
		return nil, ErrForbidden
	}
	return c, nil
}
