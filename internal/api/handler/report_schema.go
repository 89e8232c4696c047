package handler

import "github.com/cars-g/reporting-api/internal/core/domain"

// --- Request types ---

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// createReportRequest leaves required-field checks to the service so a
// missing field always yields "missing required fields".
type createReportRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	IsAnonymous bool             `json:"isAnonymous"`
	Location    *locationRequest `json:"location"`
	ImageURLs   []string         `json:"imageUrls" validate:"omitempty,max=10,dive,url"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type assignReportRequest struct {
	PatrolUserID string `json:"patrolUserId"`
}

type updatePriorityRequest struct {
	PriorityLevel *int `json:"priorityLevel"`
}

type attachProofRequest struct {
	ImageURLs []string `json:"imageUrls" validate:"required,min=1,max=10,dive,url"`
}

// --- Response types ---

type createReportResponse struct {
	*domain.Report
	Message string `json:"message"`
}

type reportListResponse struct {
	Reports []*domain.Report `json:"reports"`
	Total   int64            `json:"total"`
}

type reportsResponse struct {
	Reports []*domain.Report `json:"reports"`
}

type statusChangeResponse struct {
	Message       string `json:"message"`
	Status        string `json:"status"`
	PointsAwarded bool   `json:"pointsAwarded"`
}
