package dto

import "time"

// StatisticsFilter scopes an aggregation query.
type StatisticsFilter struct {
	StudentID  *uint      `query:"student_id"`
	Department *string    `query:"department"`
	From       *time.Time `query:"from"`
	To         *time.Time `query:"to"`
}

// StatisticsSummaryResponse groups activity counts and approved totals for a scope.
type StatisticsSummaryResponse struct {
	TotalActivities int64            `json:"total_activities"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByType          map[string]int64 `json:"by_type"`
	ByCategory      map[string]int64 `json:"by_category"`
	ApprovedScore   int64            `json:"approved_score"`
	ApprovedCredits int64            `json:"approved_credits"`
	GeneratedAt     time.Time        `json:"generated_at"`
	CacheHit        bool             `json:"cache_hit"`
}

// MonthlyTrendPoint counts activity submissions for one calendar month.
type MonthlyTrendPoint struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	Count      int64 `json:"count"`
	Approved   int64 `json:"approved"`
	ScoreTotal int64 `json:"score_total"`
}

// MonthlyTrendResponse lists submission counts in ascending chronological order.
type MonthlyTrendResponse struct {
	Points      []MonthlyTrendPoint `json:"points"`
	GeneratedAt time.Time           `json:"generated_at"`
	CacheHit    bool                `json:"cache_hit"`
}
