package domain

import (
	"fmt"
	"time"
)

// ReportStatus is the lifecycle label of a report.
type ReportStatus string

const (
	StatusVerifying            ReportStatus = "verifying"
	StatusPending              ReportStatus = "pending"
	StatusInProgress           ReportStatus = "in_progress"
	StatusAwaitingVerification ReportStatus = "awaiting_verification"
	StatusResolved             ReportStatus = "resolved"
	StatusClosed               ReportStatus = "closed"
)

const (
	MinPriority = 1
	MaxPriority = 5

	// ResolutionReward is the number of points the owner earns when a report resolves.
	ResolutionReward = 10
)

var knownStatuses = map[ReportStatus]struct{}{
	StatusVerifying:            {},
	StatusPending:              {},
	StatusInProgress:           {},
	StatusAwaitingVerification: {},
	StatusResolved:             {},
	StatusClosed:               {},
}

// validTransitions is the strict lifecycle table, only consulted when strict
// lifecycle enforcement is switched on.
var validTransitions = map[ReportStatus][]ReportStatus{
	StatusVerifying:            {StatusPending, StatusInProgress, StatusClosed},
	StatusPending:              {StatusInProgress, StatusClosed},
	StatusInProgress:           {StatusPending, StatusAwaitingVerification, StatusResolved},
	StatusAwaitingVerification: {StatusInProgress, StatusResolved},
	StatusResolved:             {StatusClosed},
}

// Valid reports whether s is a recognised status.
func (s ReportStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// CanTransition reports whether the strict table allows moving from one status
// to another. Re-applying the current status is always allowed.
func CanTransition(from, to ReportStatus) bool {
	if from == to {
		return to.Valid()
	}
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is within [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Location is a geographic point.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Report is a safety report filed by a user.
type Report struct {
	ID            string       `json:"id" bson:"_id"`
	CaseNumber    string       `json:"caseNumber" bson:"caseNumber"`
	Title         string       `json:"title" bson:"title"`
	Description   string       `json:"description" bson:"description"`
	Category      string       `json:"category" bson:"category"`
	IsAnonymous   bool         `json:"isAnonymous" bson:"isAnonymous"`
	Location      Location     `json:"location" bson:"location"`
	ImageURLs     []string     `json:"imageUrls" bson:"imageUrls"`
	ProofImages   []string     `json:"proofImages,omitempty" bson:"proofImages,omitempty"`
	Status        ReportStatus `json:"status" bson:"status"`
	PriorityLevel int          `json:"priorityLevel" bson:"priorityLevel"`
	UserID        string       `json:"userId" bson:"userId"`
	PatrolUserID  string       `json:"patrolUserId,omitempty" bson:"patrolUserId,omitempty"`
	PointsAwarded bool         `json:"pointsAwarded" bson:"pointsAwarded"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// RelationTo returns how userID relates to the report.
func (r *Report) RelationTo(userID string) Relation {
	rel := RelationNone
	if userID == "" {
		return rel
	}
	if r.UserID == userID {
		rel |= RelationOwner
	}
	if r.PatrolUserID == userID {
		rel |= RelationAssignedPatrol
	}
	return rel
}

// FormatCaseNumber renders the human-facing case number CARS-<6 digits>-<3 digits>
// from the submission time and a random suffix in [0, 999].
func FormatCaseNumber(submitted time.Time, suffix int) string {
	return fmt.Sprintf("CARS-%06d-%03d", submitted.UnixMilli()%1_000_000, suffix%1000)
}

// ReportStats aggregates a user's reports.
type ReportStats struct {
	TotalReports      int            `json:"totalReports"`
	ReportsByStatus   map[string]int `json:"reportsByStatus"`
	ReportsByCategory map[string]int `json:"reportsByCategory"`
	TotalPoints       int            `json:"totalPoints"`
}

// ComputeStats counts reports by status and category. TotalPoints is derived
// as ResolutionReward per resolved report and is independent of the profile's
// persisted points.
func ComputeStats(reports []*Report) ReportStats {
	stats := ReportStats{
		ReportsByStatus:   make(map[string]int),
		ReportsByCategory: make(map[string]int),
	}
	resolved := 0
	for _, r := range reports {
		stats.TotalReports++
		stats.ReportsByStatus[string(r.Status)]++
		stats.ReportsByCategory[r.Category]++
		if r.Status == StatusResolved {
			resolved++
		}
	}
	stats.TotalPoints = resolved * ResolutionReward
	return stats
}
