package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"tableside/internal/domain"
)

const (
	sessionLifetime = 6 * time.Hour
	tokenLength     = 48
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// generateToken draws each character with crypto/rand; 48 alphanumeric
// characters carry ~285 bits of entropy.
func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	token := make([]byte, tokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}
		token[i] = tokenAlphabet[n.Int64()]
	}
	return string(token), nil
}

type SessionService struct {
	sessions SessionRepository
	orders   OrderRepository
	cache    SessionCache
}

func NewSessionService(sessions SessionRepository, orders OrderRepository, cache SessionCache) *SessionService {
	return &SessionService{
		sessions: sessions,
		orders:   orders,
		cache:    cache,
	}
}

// NewSession builds an unsaved session; order submission persists it inside
// the order transaction.
func (s *SessionService) NewSession(tableID int, customerName, customerPhone string) (*domain.CustomerSession, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &domain.CustomerSession{
		Token:         token,
		TableID:       tableID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Active:        true,
		ExpiresAt:     time.Now().Add(sessionLifetime),
	}, nil
}

func (s *SessionService) Create(ctx context.Context, tableID int, customerName, customerPhone string) (*domain.CustomerSession, error) {
	if tableID <= 0 {
		verr := domain.NewValidationError()
		verr.Add("table_id", "must be a positive id")
		return nil, verr
	}

	session, err := s.NewSession(tableID, customerName, customerPhone)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.InsertSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve looks up an active, unexpired session by token. Expiry is checked
// lazily at read time; nothing sweeps expired rows.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.CustomerSession, error) {
	now := time.Now()

	if s.cache != nil {
		key := s.cache.SessionKey(token)
		cached, err := s.cache.GetSession(ctx, key)
		if err != nil {
			log.Printf("[tableside] session cache lookup failed: %v", err)
		} else if cached != nil {
			if !cached.Active || !now.Before(cached.ExpiresAt) {
				return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
			}
			return cached, nil
		}
	}

	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.Active || !now.Before(session.ExpiresAt) {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}

	if s.cache != nil {
		key := s.cache.SessionKey(token)
		if err := s.cache.SetSession(ctx, key, session, time.Until(session.ExpiresAt)); err != nil {
			log.Printf("[tableside] session cache store failed: %v", err)
		}
	}
	return session, nil
}

// Orders is the session's time-windowed view: every order on the session's
// table placed at or after the session started, newest first. Orders from a
// concurrent session on the same table show up too; that sharing boundary is
// deliberate.
func (s *SessionService) Orders(ctx context.Context, session *domain.CustomerSession) ([]domain.Order, error) {
	return s.orders.ListOrdersForTableSince(ctx, session.TableID, session.CreatedAt)
}

var _ SessionServiceInterface = (*SessionService)(nil)
var _ SessionMinter = (*SessionService)(nil)
