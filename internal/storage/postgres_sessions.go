package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"
)

func (r *PostgresRepository) InsertSession(ctx context.Context, session *domain.CustomerSession) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO customer_sessions (session_token, table_id, customer_name, customer_phone, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		session.Token, session.TableID, session.CustomerName, session.CustomerPhone,
		session.Active, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *PostgresRepository) GetSessionByToken(ctx context.Context, token string) (*domain.CustomerSession, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var s domain.CustomerSession
	err := r.DB.QueryRowContext(ctx, `
		SELECT s.id, s.session_token, s.table_id, t.name, s.customer_name, s.customer_phone,
			s.is_active, s.expires_at, s.created_at
		FROM customer_sessions s
		JOIN tables t ON s.table_id = t.id
		WHERE s.session_token = $1`, token,
	).Scan(&s.ID, &s.Token, &s.TableID, &s.TableName, &s.CustomerName, &s.CustomerPhone,
		&s.Active, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
