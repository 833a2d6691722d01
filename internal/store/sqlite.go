package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"salonmate/internal/model"
)

// DB is the SQLite-backed store.
type DB struct {
	conn   *sql.DB
	logger *zerolog.Logger
}

// NewDB opens (creating if necessary) the SQLite database at path
// and prepares the schema. WAL mode keeps readers unblocked while
// the controller writes.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{conn: conn, logger: logger}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database ready")
	return db, nil
}

func (db *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		service_type TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reservations_date ON reservations(date);

	CREATE TABLE IF NOT EXISTS service_options (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		sort_order INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Ping reports connection health for readiness checks.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// ListReservations returns every reservation in creation order.
// Creation order is what the derived views expect; they do their
// own sorting per projection.
func (db *DB) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, customer_name, customer_phone, date, time, service_type, memo, created_at
		FROM reservations
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.CustomerName, &r.CustomerPhone,
			&r.Date, &r.Time, &r.ServiceType, &r.Memo, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// CreateReservation inserts a new reservation with a fresh id and
// returns the stored row.
func (db *DB) CreateReservation(ctx context.Context, input model.ReservationInput) (model.Reservation, error) {
	r := model.Reservation{
		ID:            uuid.NewString(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Date:          input.Date,
		Time:          input.Time,
		ServiceType:   input.ServiceType,
		Memo:          input.Memo,
		CreatedAt:     time.Now(),
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO reservations (id, customer_name, customer_phone, date, time, service_type, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CustomerName, r.CustomerPhone, r.Date, r.Time, r.ServiceType, r.Memo, r.CreatedAt)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}

	db.logger.Info().Str("id", r.ID).Str("date", r.Date).Str("time", r.Time).Msg("reservation created")
	return r, nil
}

// UpdateReservation overwrites the mutable fields of an existing
// reservation. The creation timestamp is preserved.
func (db *DB) UpdateReservation(ctx context.Context, id string, input model.ReservationInput) (model.Reservation, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE reservations
		SET customer_name = ?, customer_phone = ?, date = ?, time = ?, service_type = ?, memo = ?
		WHERE id = ?`,
		input.CustomerName, input.CustomerPhone, input.Date, input.Time, input.ServiceType, input.Memo, id)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("update reservation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, fmt.Errorf("update reservation: %w", err)
	}
	if affected == 0 {
		return model.Reservation{}, ErrNotFound
	}

	var r model.Reservation
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_phone, date, time, service_type, memo, created_at
		FROM reservations WHERE id = ?`, id).
		Scan(&r.ID, &r.CustomerName, &r.CustomerPhone,
			&r.Date, &r.Time, &r.ServiceType, &r.Memo, &r.CreatedAt)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("reload reservation: %w", err)
	}

	db.logger.Info().Str("id", id).Msg("reservation updated")
	return r, nil
}

// DeleteReservation removes a reservation. Deleting an id that is
// already gone is not an error; the end state is the same.
func (db *DB) DeleteReservation(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	db.logger.Info().Str("id", id).Msg("reservation deleted")
	return nil
}

// ListServiceOptions returns the service type catalog. On first use
// the default catalog is seeded in one transaction and returned as
// is; every later read passes the stored options through the
// read-time normalization policy.
func (db *DB) ListServiceOptions(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT name FROM service_options ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list service options: %w", err)
	}
	defer rows.Close()

	options := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan service option: %w", err)
		}
		options = append(options, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(options) == 0 {
		if err := db.seedServiceOptions(ctx); err != nil {
			return nil, err
		}
		seeded := make([]string, len(model.DefaultServiceOptions))
		copy(seeded, model.DefaultServiceOptions)
		return seeded, nil
	}
	return model.NormalizeServiceOptions(options), nil
}

func (db *DB) seedServiceOptions(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed service options: %w", err)
	}
	defer tx.Rollback()

	for i, name := range model.DefaultServiceOptions {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO service_options (name, sort_order) VALUES (?, ?)`,
			name, i); err != nil {
			return fmt.Errorf("seed service options: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed service options: %w", err)
	}

	db.logger.Info().Int("count", len(model.DefaultServiceOptions)).Msg("service options seeded")
	return nil
}
