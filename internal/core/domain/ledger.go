package domain

import "time"

const (
	ReasonReportResolved   = "Report resolved"
	ReasonManualAdjustment = "Manual points adjustment"
)

// LedgerEntry is one append-only record of a points change.
type LedgerEntry struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Points    int       `json:"points" bson:"points"`
	Reason    string    `json:"reason" bson:"reason"`
	ReportID  string    `json:"reportId,omitempty" bson:"reportId,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	AddedBy   string    `json:"addedBy" bson:"addedBy"`
}

// PointsDrift records a profile whose persisted points disagree with the
// figure derived from its resolved reports.
type PointsDrift struct {
	UserID    string
	Persisted int
	Derived   int
}
