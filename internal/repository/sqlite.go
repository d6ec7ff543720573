package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/winterfair/fairbot/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	coins INTEGER NOT NULL DEFAULT 0,
	pavilions_open TEXT NOT NULL DEFAULT '[]',
	facts_collected TEXT NOT NULL DEFAULT '[]',
	tasks_completed INTEGER NOT NULL DEFAULT 0,
	guests_served INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS pavilions (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	emoji TEXT NOT NULL,
	location TEXT NOT NULL,
	price INTEGER NOT NULL,
	reward INTEGER NOT NULL,
	description TEXT NOT NULL,
	atmosphere TEXT NOT NULL,
	tasks_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	pavilion_id INTEGER NOT NULL REFERENCES pavilions(id),
	name TEXT NOT NULL,
	emoji TEXT NOT NULL,
	type TEXT NOT NULL,
	reward INTEGER NOT NULL,
	fact_id INTEGER
);

CREATE TABLE IF NOT EXISTS facts (
	id INTEGER PRIMARY KEY,
	pavilion_id INTEGER NOT NULL REFERENCES pavilions(id),
	text TEXT NOT NULL
);
`

// SQLiteStore is a database/sql backed Store implementation using the
// modernc.org/sqlite driver.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSQLiteStore wraps db and ensures the schema exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB, log *slog.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = slog.Default()
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// races between concurrent transactions.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, log: log}, nil
}

// GetOrCreateUser returns the stored profile or creates one with the
// starting balance.
func (s *SQLiteStore) GetOrCreateUser(ctx context.Context, userID, startingCoins int64) (*domain.User, error) {
	const insert = `
		INSERT INTO users (user_id, coins) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, insert, userID, startingCoins); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return s.getUser(ctx, s.db, userID)
}

// User returns the stored profile without creating one.
func (s *SQLiteStore) User(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getUser(ctx, s.db, userID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) getUser(ctx context.Context, q querier, userID int64) (*domain.User, error) {
	const query = `
		SELECT user_id, coins, pavilions_open, facts_collected, tasks_completed, guests_served, created_at
		FROM users
		WHERE user_id = ?
	`

	row := q.QueryRowContext(ctx, query, userID)

	var (
		user          domain.User
		pavilionsJSON string
		factsJSON     string
		createdAt     string
	)
	if err := row.Scan(
		&user.ID,
		&user.Coins,
		&pavilionsJSON,
		&factsJSON,
		&user.TasksCompleted,
		&user.GuestsServed,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	if err := json.Unmarshal([]byte(pavilionsJSON), &user.PavilionsOpen); err != nil {
		s.log.Warn("corrupt pavilions_open payload", slog.Int64("user_id", userID), slog.Any("error", err))
		user.PavilionsOpen = nil
	}
	if err := json.Unmarshal([]byte(factsJSON), &user.FactsCollected); err != nil {
		s.log.Warn("corrupt facts_collected payload", slog.Int64("user_id", userID), slog.Any("error", err))
		user.FactsCollected = nil
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		user.CreatedAt = ts
	}

	return &user, nil
}

// AddCoins applies an additive balance increment.
func (s *SQLiteStore) AddCoins(ctx context.Context, userID, amount int64) error {
	const query = `UPDATE users SET coins = coins + ? WHERE user_id = ?`

	res, err := s.db.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("add coins: %w", err)
	}

	return requireAffected(res)
}

// SpendCoins debits the balance conditionally in a single statement so that
// concurrent purchases cannot overdraw.
func (s *SQLiteStore) SpendCoins(ctx context.Context, userID, amount int64) error {
	const query = `UPDATE users SET coins = coins - ? WHERE user_id = ? AND coins >= ?`

	res, err := s.db.ExecContext(ctx, query, amount, userID, amount)
	if err != nil {
		return fmt.Errorf("spend coins: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("spend coins rows affected: %w", err)
	}
	if affected == 0 {
		// Either the user is missing or the balance is short; callers
		// always resolve the user first, so report the latter.
		return ErrInsufficientFunds
	}

	return nil
}

// OpenPavilion appends the pavilion to the opened set inside a transaction.
func (s *SQLiteStore) OpenPavilion(ctx context.Context, userID, pavilionID int64) error {
	return s.appendToSet(ctx, userID, pavilionID, "pavilions_open")
}

// AddFact appends the fact to the collected set inside a transaction.
// Adding an already collected fact is a no-op.
func (s *SQLiteStore) AddFact(ctx context.Context, userID, factID int64) error {
	return s.appendToSet(ctx, userID, factID, "facts_collected")
}

func (s *SQLiteStore) appendToSet(ctx context.Context, userID, value int64, column string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var payload string
	row := tx.QueryRowContext(ctx, `SELECT `+column+` FROM users WHERE user_id = ?`, userID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select %s: %w", column, err)
	}

	var set []int64
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		set = nil
	}

	for _, existing := range set {
		if existing == value {
			return tx.Commit()
		}
	}

	set = append(set, value)
	encoded, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode %s: %w", column, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET `+column+` = ? WHERE user_id = ?`, string(encoded), userID); err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}

	return tx.Commit()
}

// IncrementTasksCompleted bumps the completed-tasks counter atomically.
func (s *SQLiteStore) IncrementTasksCompleted(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET tasks_completed = tasks_completed + 1 WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("increment tasks completed: %w", err)
	}

	return requireAffected(res)
}

// IncrementGuestsServed bumps the guests-served counter atomically.
func (s *SQLiteStore) IncrementGuestsServed(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET guests_served = guests_served + 1 WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("increment guests served: %w", err)
	}

	return requireAffected(res)
}

// Pavilion fetches a single pavilion.
func (s *SQLiteStore) Pavilion(ctx context.Context, pavilionID int64) (*domain.Pavilion, error) {
	const query = `
		SELECT id, name, emoji, location, price, reward, description, atmosphere, tasks_count
		FROM pavilions WHERE id = ?
	`

	var pav domain.Pavilion
	row := s.db.QueryRowContext(ctx, query, pavilionID)
	if err := row.Scan(&pav.ID, &pav.Name, &pav.Emoji, &pav.Location, &pav.Price, &pav.Reward, &pav.Description, &pav.Atmosphere, &pav.TasksCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select pavilion: %w", err)
	}

	return &pav, nil
}

// Pavilions returns all pavilions ordered by id.
func (s *SQLiteStore) Pavilions(ctx context.Context) ([]*domain.Pavilion, error) {
	const query = `
		SELECT id, name, emoji, location, price, reward, description, atmosphere, tasks_count
		FROM pavilions ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select pavilions: %w", err)
	}
	defer rows.Close()

	var result []*domain.Pavilion
	for rows.Next() {
		var pav domain.Pavilion
		if err := rows.Scan(&pav.ID, &pav.Name, &pav.Emoji, &pav.Location, &pav.Price, &pav.Reward, &pav.Description, &pav.Atmosphere, &pav.TasksCount); err != nil {
			return nil, fmt.Errorf("scan pavilion: %w", err)
		}
		result = append(result, &pav)
	}

	return result, rows.Err()
}

// Task fetches a single task definition.
func (s *SQLiteStore) Task(ctx context.Context, taskID int64) (*domain.Task, error) {
	const query = `SELECT id, pavilion_id, name, emoji, type, reward, COALESCE(fact_id, 0) FROM tasks WHERE id = ?`

	var task domain.Task
	row := s.db.QueryRowContext(ctx, query, taskID)
	if err := row.Scan(&task.ID, &task.PavilionID, &task.Name, &task.Emoji, &task.Type, &task.Reward, &task.FactID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}

	return &task, nil
}

// PavilionTasks returns the tasks of one pavilion ordered by id.
func (s *SQLiteStore) PavilionTasks(ctx context.Context, pavilionID int64) ([]*domain.Task, error) {
	const query = `SELECT id, pavilion_id, name, emoji, type, reward, COALESCE(fact_id, 0) FROM tasks WHERE pavilion_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, pavilionID)
	if err != nil {
		return nil, fmt.Errorf("select pavilion tasks: %w", err)
	}
	defer rows.Close()

	var result []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.PavilionID, &task.Name, &task.Emoji, &task.Type, &task.Reward, &task.FactID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, &task)
	}

	return result, rows.Err()
}

// Fact fetches a single fact.
func (s *SQLiteStore) Fact(ctx context.Context, factID int64) (*domain.Fact, error) {
	const query = `SELECT id, pavilion_id, text FROM facts WHERE id = ?`

	var fact domain.Fact
	row := s.db.QueryRowContext(ctx, query, factID)
	if err := row.Scan(&fact.ID, &fact.PavilionID, &fact.Text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select fact: %w", err)
	}

	return &fact, nil
}

// PavilionFacts returns the facts of one pavilion ordered by id.
func (s *SQLiteStore) PavilionFacts(ctx context.Context, pavilionID int64) ([]*domain.Fact, error) {
	const query = `SELECT id, pavilion_id, text FROM facts WHERE pavilion_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, pavilionID)
	if err != nil {
		return nil, fmt.Errorf("select pavilion facts: %w", err)
	}
	defer rows.Close()

	var result []*domain.Fact
	for rows.Next() {
		var fact domain.Fact
		if err := rows.Scan(&fact.ID, &fact.PavilionID, &fact.Text); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		result = append(result, &fact)
	}

	return result, rows.Err()
}

// UserStats builds the aggregate progress snapshot.
func (s *SQLiteStore) UserStats(ctx context.Context, userID int64) (*domain.Stats, error) {
	user, err := s.getUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		Coins:          user.Coins,
		GuestsServed:   user.GuestsServed,
		PavilionsOpen:  len(user.PavilionsOpen),
		FactsCollected: len(user.FactsCollected),
		TasksCompleted: user.TasksCompleted,
	}, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
