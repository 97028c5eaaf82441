package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
)

// ErrNotFound is returned by GetRun for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Store is the SQLite-backed schedule store.
type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS schedule_runs (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	workers INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	median INTEGER NOT NULL,
	makespan INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_schedule_runs_created_at ON schedule_runs(created_at);

CREATE TABLE IF NOT EXISTS workflow_results (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	scheduled_at INTEGER NOT NULL,
	completed_at INTEGER NOT NULL,
	PRIMARY KEY (run_id, position),
	FOREIGN KEY (run_id) REFERENCES schedule_runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS task_assignments (
	run_id TEXT NOT NULL,
	workflow_position INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	worker TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	completed_at INTEGER NOT NULL,
	PRIMARY KEY (run_id, workflow_position, position),
	FOREIGN KEY (run_id, workflow_position) REFERENCES workflow_results(run_id, position) ON DELETE CASCADE
);
`

// Open connects to the SQLite database at dsn, for example "gridplan.db" or
// ":memory:". Call Migrate before first use.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := configureSQLite(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Store opened.", "dsn", dsn)
	return &Store{db: db}, nil
}

func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=30000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}
	return nil
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run with all its workflows and tasks in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const insertRun = `INSERT INTO schedule_runs (id, created_at, workers, outcome, reason, median, makespan)
		VALUES (:id, :created_at, :workers, :outcome, :reason, :median, :makespan)`
	if _, err := tx.NamedExecContext(ctx, insertRun, run); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	const insertWorkflow = `INSERT INTO workflow_results (run_id, position, name, scheduled_at, completed_at)
		VALUES (:run_id, :position, :name, :scheduled_at, :completed_at)`
	const insertTask = `INSERT INTO task_assignments (run_id, workflow_position, position, name, worker, started_at, completed_at)
		VALUES (:run_id, :workflow_position, :position, :name, :worker, :started_at, :completed_at)`
	tasks := 0
	for _, w := range run.Workflows {
		if _, err := tx.NamedExecContext(ctx, insertWorkflow, w); err != nil {
			return fmt.Errorf("failed to insert workflow '%s': %w", w.Name, err)
		}
		for _, t := range w.Tasks {
			if _, err := tx.NamedExecContext(ctx, insertTask, t); err != nil {
				return fmt.Errorf("failed to insert task '%s' of workflow '%s': %w", t.Name, w.Name, err)
			}
			tasks++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	ctxlog.FromContext(ctx).Debug("Run stored.", "run_id", run.ID, "workflows", len(run.Workflows), "tasks", tasks)
	return nil
}

// GetRun loads a run with its workflows and tasks in declaration order.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run, `SELECT id, created_at, workers, outcome, reason, median, makespan
		FROM schedule_runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	var workflows []*WorkflowResult
	if err := s.db.SelectContext(ctx, &workflows, `SELECT run_id, position, name, scheduled_at, completed_at
		FROM workflow_results WHERE run_id = ? ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("failed to load workflows of run %s: %w", id, err)
	}
	var tasks []*TaskAssignment
	if err := s.db.SelectContext(ctx, &tasks, `SELECT run_id, workflow_position, position, name, worker, started_at, completed_at
		FROM task_assignments WHERE run_id = ? ORDER BY workflow_position, position`, id); err != nil {
		return nil, fmt.Errorf("failed to load tasks of run %s: %w", id, err)
	}

	run.Workflows = make([]*WorkflowResult, 0, len(workflows))
	for _, w := range workflows {
		w.Tasks = []*TaskAssignment{}
		run.Workflows = append(run.Workflows, w)
	}
	for _, t := range tasks {
		if t.WorkflowPosition < 0 || t.WorkflowPosition >= len(run.Workflows) {
			return nil, fmt.Errorf("run %s: task '%s' references missing workflow #%d", id, t.Name, t.WorkflowPosition)
		}
		w := run.Workflows[t.WorkflowPosition]
		w.Tasks = append(w.Tasks, t)
	}
	return &run, nil
}

// ListRuns returns the most recent run summaries, newest first. Workflows
// are not loaded. A non-positive limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	var runs []*Run
	if err := s.db.SelectContext(ctx, &runs, `SELECT id, created_at, workers, outcome, reason, median, makespan
		FROM schedule_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
