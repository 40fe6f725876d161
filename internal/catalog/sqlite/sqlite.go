// Package sqlite implements the database-backed catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/okazakov/boardwire-server/internal/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL,
	title     TEXT NOT NULL,
	questions TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_id ON quizzes(id);
`

// Store implements catalog.Store for SQLite. Quiz questions are stored as a
// JSON column; id carries no unique constraint, matching the file backend's
// permissiveness.
type Store struct {
	db  *sql.DB
	log *zerolog.Logger
}

// New opens (or creates) the SQLite database at dbPath and applies the
// schema. The connection is pinged so an unreachable database fails here,
// letting the caller fall back to the file backend.
func New(dbPath string, logger *zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Store{db: db, log: logger}, nil
}

// List returns all quizzes in insertion order.
func (s *Store) List(ctx context.Context) ([]catalog.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, questions FROM quizzes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []catalog.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// Get returns the first quiz whose id matches, or catalog.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*catalog.Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, questions FROM quizzes WHERE id = ? ORDER BY seq LIMIT 1`, id)

	quiz, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// Create inserts a new quiz row and returns the stored form.
func (s *Store) Create(ctx context.Context, quiz catalog.Quiz) (*catalog.Quiz, error) {
	questions, err := marshalQuestions(quiz.Questions)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, questions) VALUES (?, ?, ?)`,
		quiz.ID, quiz.Title, questions); err != nil {
		return nil, fmt.Errorf("insert quiz: %w", err)
	}
	return &quiz, nil
}

// SeedAndSync reconciles the bundled seed quizzes into the database. When
// the table is empty every seed quiz is bulk-inserted; after that each seed
// quiz is upserted keyed by id, so restarting with new seed entries picks
// them up. Running it twice yields the same end state as running it once.
// Per-quiz upsert failures are logged and skipped.
func (s *Store) SeedAndSync(ctx context.Context, seeds []catalog.Quiz) error {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&count); err != nil {
		return fmt.Errorf("count quizzes: %w", err)
	}

	if count == 0 && len(seeds) > 0 {
		if err := s.bulkInsert(ctx, seeds); err != nil {
			return err
		}
		s.log.Info().Int("quizzes", len(seeds)).Msg("seeded empty quiz collection")
	}

	for i := range seeds {
		if err := s.upsert(ctx, seeds[i]); err != nil {
			s.log.Warn().Err(err).Str("quiz_id", seeds[i].ID).Msg("seed sync: upsert failed")
		}
	}
	return nil
}

// Mode reports catalog.ModeDatabase.
func (s *Store) Mode() catalog.Mode {
	return catalog.ModeDatabase
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) bulkInsert(ctx context.Context, quizzes []catalog.Quiz) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed insert: %w", err)
	}
	defer tx.Rollback()

	for i := range quizzes {
		questions, err := marshalQuestions(quizzes[i].Questions)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quizzes (id, title, questions) VALUES (?, ?, ?)`,
			quizzes[i].ID, quizzes[i].Title, questions); err != nil {
			return fmt.Errorf("seed insert quiz %q: %w", quizzes[i].ID, err)
		}
	}
	return tx.Commit()
}

// upsert updates the first row matching the quiz id, inserting when no row
// matches. Duplicate rows beyond the first are left alone.
func (s *Store) upsert(ctx context.Context, quiz catalog.Quiz) error {
	questions, err := marshalQuestions(quiz.Questions)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET title = ?, questions = ?
		 WHERE seq = (SELECT seq FROM quizzes WHERE id = ? ORDER BY seq LIMIT 1)`,
		quiz.Title, questions, quiz.ID)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, questions) VALUES (?, ?, ?)`,
		quiz.ID, quiz.Title, questions); err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func marshalQuestions(questions []catalog.Question) (string, error) {
	if questions == nil {
		questions = []catalog.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("marshal questions: %w", err)
	}
	return string(data), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*catalog.Quiz, error) {
	var quiz catalog.Quiz
	var questions string
	if err := row.Scan(&quiz.ID, &quiz.Title, &questions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &quiz.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return &quiz, nil
}
