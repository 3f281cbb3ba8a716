package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"floorplanner/internal/planner/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	_ "github.com/ncruces/go-sqlite3/vfs/memdb"
)

// MemoryDSN keeps plans for the lifetime of the process only.
const MemoryDSN = "file:/floorplans.db?vfs=memdb"

var ErrNotFound = errors.New("plan not found")

// createdAtLayout is fixed width so created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// PlanSummary is one row of the plan listing.
type PlanSummary struct {
	ID        string    `json:"id"`
	TotalArea float64   `json:"totalArea"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Repository) Save(ctx context.Context, rec *models.PlanRecord) error {
	reqJSON, err := json.Marshal(rec.Requirements)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	plotJSON, err := json.Marshal(rec.Plot)
	if err != nil {
		return fmt.Errorf("marshal plot: %w", err)
	}
	planJSON, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO plans (id, requirements, plot, plan, total_area, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, rec.ID, string(reqJSON), string(plotJSON), string(planJSON), rec.Plan.TotalArea,
		rec.CreatedAt.UTC().Format(createdAtLayout))
	if err != nil {
		return fmt.Errorf("insert plan %s: %w", rec.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, requirements, plot, plan, created_at
        FROM plans
        WHERE id = ?
    `, id)

	var (
		rec                                    models.PlanRecord
		reqJSON, plotJSON, planJSON, createdAt string
	)
	if err := row.Scan(&rec.ID, &reqJSON, &plotJSON, &planJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(reqJSON), &rec.Requirements); err != nil {
		return nil, fmt.Errorf("decode requirements: %w", err)
	}
	if err := json.Unmarshal([]byte(plotJSON), &rec.Plot); err != nil {
		return nil, fmt.Errorf("decode plot: %w", err)
	}
	if err := json.Unmarshal([]byte(planJSON), &rec.Plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	rec.CreatedAt = t

	return &rec, nil
}

// List returns plans newest first.
func (r *Repository) List(ctx context.Context) ([]PlanSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, total_area, created_at
        FROM plans
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	out := []PlanSummary{}
	for rows.Next() {
		var (
			s         PlanSummary
			createdAt string
		)
		if err := rows.Scan(&s.ID, &s.TotalArea, &createdAt); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("decode created_at: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	files, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite opens a database. A "file:" DSN is used as given; anything else
// is treated as a path on disk.
func OpenSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	if !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dsn)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
