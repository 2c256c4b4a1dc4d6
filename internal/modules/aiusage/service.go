// README: AI token-usage logic guarding generation requests.
package aiusage

import (
	"context"
	"errors"
	"log"
)

// Service orchestrates AI token-usage logic.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseToken deducts one token from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	err := s.store.UseToken(ctx, uid)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid)
}

// Guard consumes a token, runs fn and refunds the token when fn fails.
func (s *Service) Guard(ctx context.Context, uid string, fn func() error) error {
	if err := s.UseToken(ctx, uid); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rerr := s.store.Refund(context.WithoutCancel(ctx), uid); rerr != nil {
			log.Printf("aiusage: refund %s: %v", uid, rerr)
		}
		return err
	}
	return nil
}

func (s *Service) Usage(ctx context.Context, uid string) (Usage, error) {
	return s.store.Usage(ctx, uid)
}
