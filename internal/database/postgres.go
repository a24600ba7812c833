package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/messagely/messagely-backend/internal/apperrors"
	"github.com/messagely/messagely-backend/internal/models"
)

// uniqueViolation is the Postgres error code for duplicate-key inserts.
const uniqueViolation = "23505"

// PostgresStore implements Store on top of PostgreSQL via lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres opens a pooled connection, verifies it, and ensures the
// schema exists.
func ConnectPostgres(postgresURI string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	store := &PostgresStore{db: db}
	if err = store.initTables(); err != nil {
		return nil, err
	}

	return store, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// initTables creates the schema if it does not exist yet.
func (s *PostgresStore) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username VARCHAR(20) PRIMARY KEY,
			password_hash VARCHAR(255) NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			join_at TIMESTAMPTZ NOT NULL,
			last_login_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			from_username VARCHAR(20) NOT NULL REFERENCES users(username),
			to_username VARCHAR(20) NOT NULL REFERENCES users(username),
			body TEXT NOT NULL,
			sent_at TIMESTAMPTZ NOT NULL,
			read_at TIMESTAMPTZ
		)`,

		`CREATE INDEX IF NOT EXISTS idx_messages_from_username ON messages(from_username)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_to_username ON messages(to_username)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

func (s *PostgresStore) InsertUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, phone, join_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.JoinedAt, user.LastLoginAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.ErrUsernameTaken
	}
	return err
}

func (s *PostgresStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password_hash, first_name, last_name, phone, join_at, last_login_at
		FROM users WHERE username = $1
	`, username).Scan(&user.Username, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Phone, &user.JoinedAt, &user.LastLoginAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $1 WHERE username = $2`, at, username)
	return err
}

func (s *PostgresStore) ListUsersOrdered(ctx context.Context) ([]models.PublicUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, first_name, last_name, phone
		FROM users ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.PublicUser{}
	for rows.Next() {
		var u models.PublicUser
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) InsertMessage(ctx context.Context, msg *models.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, from_username, to_username, body, sent_at, read_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.FromUsername, msg.ToUsername, msg.Body, msg.SentAt, msg.ReadAt)
	return err
}

func (s *PostgresStore) FindMessageByID(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error) {
	detail := &models.MessageDetail{}
	var readAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       f.username, f.first_name, f.last_name, f.phone,
		       t.username, t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		JOIN users AS t ON m.to_username = t.username
		WHERE m.id = $1
	`, id).Scan(&detail.ID, &detail.Body, &detail.SentAt, &readAt,
		&detail.FromUser.Username, &detail.FromUser.FirstName, &detail.FromUser.LastName, &detail.FromUser.Phone,
		&detail.ToUser.Username, &detail.ToUser.FirstName, &detail.ToUser.LastName, &detail.ToUser.Phone)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		detail.ReadAt = &readAt.Time
	}
	return detail, nil
}

func (s *PostgresStore) ListMessagesFromUser(ctx context.Context, username string) ([]models.SentMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.to_username = u.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.SentMessage{}
	for rows.Next() {
		var m models.SentMessage
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone); err != nil {
			return nil, err
		}
		if readAt.Valid {
			m.ReadAt = &readAt.Time
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PostgresStore) ListMessagesToUser(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.from_username = u.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ReceivedMessage{}
	for rows.Next() {
		var m models.ReceivedMessage
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone); err != nil {
			return nil, err
		}
		if readAt.Valid {
			m.ReadAt = &readAt.Time
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PostgresStore) MarkMessageRead(ctx context.Context, id uuid.UUID, at time.Time) (time.Time, error) {
	// Conditional update so concurrent calls cannot overwrite the first
	// read timestamp.
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read_at = $1 WHERE id = $2 AND read_at IS NULL`, at, id)
	if err != nil {
		return time.Time{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return at, nil
	}

	// Either already read or unknown id.
	var readAt sql.NullTime
	err = s.db.QueryRowContext(ctx,
		`SELECT read_at FROM messages WHERE id = $1`, id).Scan(&readAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, apperrors.ErrMessageNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if !readAt.Valid {
		// Row appeared between the update and the select.
		return at, nil
	}
	return readAt.Time, nil
}
