package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
)

// DocsStore is the SQLite-backed domain.DocsRepository: analysis
// snapshots, milestones and generated documents.
type DocsStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// OpenDocs opens (creating if needed) the docs database at path.
func OpenDocs(path string) (*DocsStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("docs: %w", err)
	}
	s := &DocsStore{db: db, now: time.Now}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying handle.
func (s *DocsStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *DocsStore) init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			month TEXT NOT NULL,
			metrics TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user ON analysis_snapshots(user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS milestones (
			user_id TEXT NOT NULL,
			milestone_id TEXT NOT NULL,
			title TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0,
			achieved_at TEXT NOT NULL,
			PRIMARY KEY (user_id, milestone_id)
		);`,
		`CREATE TABLE IF NOT EXISTS idea_evaluations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			idea TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dpr_documents (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS mudra_dprs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS monthly_metrics (
			user_id TEXT NOT NULL,
			month TEXT NOT NULL,
			metrics TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (user_id, month)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("docs: init: %w", err)
		}
	}
	return nil
}

func (s *DocsStore) CreateSnapshot(ctx context.Context, snap *domain.AnalysisSnapshot) (*domain.AnalysisSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.ID = uuid.NewString()
	snap.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_snapshots (id, user_id, month, metrics, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.UserID, snap.Month, string(snap.Metrics), snap.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("docs: insert snapshot: %w", err)
	}
	return snap, nil
}

func (s *DocsStore) LatestSnapshot(ctx context.Context, userID string) (*domain.AnalysisSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, month, metrics, created_at
		FROM analysis_snapshots WHERE user_id = ?
		ORDER BY created_at DESC LIMIT 1`, userID)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return snap, err
}

func (s *DocsStore) ListSnapshots(ctx context.Context, userID string, limit int) ([]*domain.AnalysisSnapshot, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, month, metrics, created_at
		FROM analysis_snapshots WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("docs: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.AnalysisSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func scanSnapshot(row rowScanner) (*domain.AnalysisSnapshot, error) {
	var snap domain.AnalysisSnapshot
	var metrics, createdAt string
	if err := row.Scan(&snap.ID, &snap.UserID, &snap.Month, &metrics, &createdAt); err != nil {
		return nil, err
	}
	snap.Metrics = json.RawMessage(metrics)
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &snap, nil
}

// AwardMilestone records an achievement. Re-awarding the same milestone is
// a no-op, which keeps the award idempotent.
func (s *DocsStore) AwardMilestone(ctx context.Context, m *domain.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	achievedAt := s.now().UTC()
	if m.AchievedAt != nil {
		achievedAt = *m.AchievedAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (user_id, milestone_id, title, icon, xp, sort_order, achieved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, milestone_id) DO NOTHING`,
		m.UserID, m.MilestoneID, m.Title, m.Icon, m.XP, m.Order, achievedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("docs: award milestone: %w", err)
	}
	return nil
}

func (s *DocsStore) ListMilestones(ctx context.Context, userID string) ([]*domain.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, milestone_id, title, icon, xp, sort_order, achieved_at
		FROM milestones WHERE user_id = ? ORDER BY sort_order ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("docs: list milestones: %w", err)
	}
	defer rows.Close()

	var out []*domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var achievedAt string
		if err := rows.Scan(&m.UserID, &m.MilestoneID, &m.Title, &m.Icon, &m.XP, &m.Order, &achievedAt); err != nil {
			return nil, err
		}
		m.Achieved = true
		if t, err := time.Parse(time.RFC3339, achievedAt); err == nil {
			m.AchievedAt = &t
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *DocsStore) CreateIdeaEvaluation(ctx context.Context, e *domain.IdeaEvaluation) (*domain.IdeaEvaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO idea_evaluations (id, user_id, idea, result, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Idea, string(e.Result), e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("docs: insert idea evaluation: %w", err)
	}
	return e, nil
}

func (s *DocsStore) ListIdeaEvaluations(ctx context.Context, userID string) ([]*domain.IdeaEvaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, idea, result, created_at
		FROM idea_evaluations WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("docs: list idea evaluations: %w", err)
	}
	defer rows.Close()

	var out []*domain.IdeaEvaluation
	for rows.Next() {
		var e domain.IdeaEvaluation
		var result, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Idea, &result, &createdAt); err != nil {
			return nil, err
		}
		e.Result = json.RawMessage(result)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *DocsStore) CreateDPR(ctx context.Context, d *domain.DPRDocument) (*domain.DPRDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dpr_documents (id, user_id, title, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Title, string(d.Content), d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("docs: insert dpr: %w", err)
	}
	return d, nil
}

func (s *DocsStore) CreateMudraDPR(ctx context.Context, r *domain.MudraDPRRecord) (*domain.MudraDPRRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mudra_dprs (id, user_id, input, output, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.UserID, string(r.Input), string(r.Output), r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("docs: insert mudra dpr: %w", err)
	}
	return r, nil
}

func (s *DocsStore) ListMudraDPRs(ctx context.Context, userID string) ([]*domain.MudraDPRRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, input, output, created_at
		FROM mudra_dprs WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("docs: list mudra dprs: %w", err)
	}
	defer rows.Close()

	var out []*domain.MudraDPRRecord
	for rows.Next() {
		var r domain.MudraDPRRecord
		var input, output, createdAt string
		if err := rows.Scan(&r.ID, &r.UserID, &input, &output, &createdAt); err != nil {
			return nil, err
		}
		r.Input = json.RawMessage(input)
		r.Output = json.RawMessage(output)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *DocsStore) UpsertMonthlyMetrics(ctx context.Context, m *domain.MonthlyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.UpdatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO monthly_metrics (user_id, month, metrics, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, month) DO UPDATE SET
			metrics = excluded.metrics,
			updated_at = excluded.updated_at`,
		m.UserID, m.Month, string(m.Metrics), m.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("docs: upsert monthly metrics: %w", err)
	}
	return nil
}

func (s *DocsStore) GetMonthlyMetrics(ctx context.Context, userID, month string) (*domain.MonthlyMetrics, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, month, metrics, updated_at
		FROM monthly_metrics WHERE user_id = ? AND month = ?`, userID, month)

	var m domain.MonthlyMetrics
	var metrics, updatedAt string
	err := row.Scan(&m.UserID, &m.Month, &metrics, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Metrics = json.RawMessage(metrics)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &m, nil
}
