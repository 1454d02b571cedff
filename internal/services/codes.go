package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/utils"
)

var ErrCodeSpaceExhausted = errors.New("no free code after retries")

var codeCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "codebox_code_collisions_total",
	Help: "Generated codes rejected because they were already in use.",
})

// CodeMinter draws codes until it finds one that is not used by any share
// record or container file, giving up after a fixed number of attempts.
type CodeMinter struct {
	store    repositories.Store
	gen      utils.CodeGenerator
	attempts int
}

func NewCodeMinter(store repositories.Store, gen utils.CodeGenerator, attempts int) *CodeMinter {
	if attempts < 1 {
		attempts = 1
	}
	return &CodeMinter{store: store, gen: gen, attempts: attempts}
}

// Mint returns a free code that is also absent from reserved, and adds it to
// reserved. reserved may be nil.
func (m *CodeMinter) Mint(ctx context.Context, reserved map[string]struct{}) (string, error) {
	for i := 0; i < m.attempts; i++ {
		code, err := m.gen.Generate()
		if err != nil {
			return "", storeErr("generate code", err)
		}
		if _, taken := reserved[code]; taken {
			codeCollisionsTotal.Inc()
			continue
		}
		inUse, err := m.store.CodeInUse(ctx, code)
		if err != nil {
			return "", storeErr("check code", err)
		}
		if inUse {
			codeCollisionsTotal.Inc()
			continue
		}
		if reserved != nil {
			reserved[code] = struct{}{}
		}
		return code, nil
	}
	return "", fmt.Errorf("%w: %w after %d attempts", ErrStore, ErrCodeSpaceExhausted, m.attempts)
}
