package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the pgxpool-backed AccountStore. All queries go through
// prepared statements registered in internal/db.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres account store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, "account_insert", email, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (s *Postgres) ByEmail(ctx context.Context, email string) (*Account, error) {
	return s.scanOne(s.pool.QueryRow(ctx, "account_by_email", email))
}

func (s *Postgres) ByID(ctx context.Context, id int64) (*Account, error) {
	return s.scanOne(s.pool.QueryRow(ctx, "account_by_id", id))
}

func (s *Postgres) SaveFlightDetails(ctx context.Context, id int64, fd FlightDetails) error {
	tag, err := s.pool.Exec(ctx, "account_save_flight", id, fd.Date, fd.Destination)
	if err != nil {
		return fmt.Errorf("save flight details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByFlightDate(ctx context.Context, date string) ([]Account, error) {
	rows, err := s.pool.Query(ctx, "accounts_by_flight_date", date)
	if err != nil {
		return nil, fmt.Errorf("accounts by flight date: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Postgres) scanOne(row pgx.Row) (*Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func scanAccount(row rowScanner) (*Account, error) {
	var a Account
	var date, dest *string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &date, &dest); err != nil {
		return nil, err
	}
	// Both columns are written together; a NULL date means no flight saved.
	if date != nil && dest != nil {
		a.FlightDetails = &FlightDetails{Date: *date, Destination: *dest}
	}
	return &a, nil
}
