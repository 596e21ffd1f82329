package domain

import (
	"context"
	"encoding/json"
	"time"
)

// AnalysisSnapshot is one saved financial health analysis. Metrics holds
// the raw metrics payload the analysis was computed from.
type AnalysisSnapshot struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Metrics   json.RawMessage `json:"metrics"`
	CreatedAt time.Time       `json:"created_at"`
}

// Milestone is one achieved gamification milestone. A milestone_id appears
// at most once per user with achieved=true.
type Milestone struct {
	UserID      string     `json:"user_id"`
	MilestoneID string     `json:"milestone_id"`
	Title       string     `json:"title"`
	Icon        string     `json:"icon"`
	XP          int        `json:"xp"`
	Order       int        `json:"order"`
	Achieved    bool       `json:"achieved"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
}

// UserXP is derived on read from achieved milestones.
type UserXP struct {
	UserID  string `json:"user_id"`
	TotalXP int    `json:"total_xp"`
	Level   int    `json:"level"`
}

// IdeaEvaluation is a stored business-idea assessment.
type IdeaEvaluation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Idea      string          `json:"idea"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// DPRDocument is a generated detailed project report.
type DPRDocument struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// MudraDPRRecord stores a Mudra engine run (input + output) for later recall.
type MudraDPRRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}

// MonthlyMetrics is upserted by (user_id, month).
type MonthlyMetrics struct {
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Metrics   json.RawMessage `json:"metrics"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DocsRepository persists snapshots, milestones and generated documents.
type DocsRepository interface {
	CreateSnapshot(ctx context.Context, s *AnalysisSnapshot) (*AnalysisSnapshot, error)
	LatestSnapshot(ctx context.Context, userID string) (*AnalysisSnapshot, error)
	ListSnapshots(ctx context.Context, userID string, limit int) ([]*AnalysisSnapshot, error)

	AwardMilestone(ctx context.Context, m *Milestone) error
	ListMilestones(ctx context.Context, userID string) ([]*Milestone, error)

	CreateIdeaEvaluation(ctx context.Context, e *IdeaEvaluation) (*IdeaEvaluation, error)
	ListIdeaEvaluations(ctx context.Context, userID string) ([]*IdeaEvaluation, error)

	CreateDPR(ctx context.Context, d *DPRDocument) (*DPRDocument, error)
	CreateMudraDPR(ctx context.Context, r *MudraDPRRecord) (*MudraDPRRecord, error)
	ListMudraDPRs(ctx context.Context, userID string) ([]*MudraDPRRecord, error)

	UpsertMonthlyMetrics(ctx context.Context, m *MonthlyMetrics) error
	GetMonthlyMetrics(ctx context.Context, userID, month string) (*MonthlyMetrics, error)
}
