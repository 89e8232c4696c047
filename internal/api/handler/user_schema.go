package handler

import "github.com/cars-g/reporting-api/internal/core/domain"

// --- Request types ---

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// setBannedRequest uses a pointer so an absent flag is told apart from false.
type setBannedRequest struct {
	IsBanned *bool `json:"isBanned"`
}

type adjustPointsRequest struct {
	Points *int   `json:"points"`
	Reason string `json:"reason" validate:"max=200"`
}

// --- Response types ---

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Total int64          `json:"total"`
}

type leaderboardEntry struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Points      int         `json:"points"`
	Role        domain.Role `json:"role"`
	PhotoURL    string      `json:"photoURL,omitempty"`
}

type leaderboardResponse struct {
	Leaderboard []leaderboardEntry `json:"leaderboard"`
}

type setBannedResponse struct {
	Message  string `json:"message"`
	IsBanned bool   `json:"isBanned"`
}

type adjustPointsResponse struct {
	Message string              `json:"message"`
	Entry   *domain.LedgerEntry `json:"entry"`
}

type pointsHistoryResponse struct {
	History []*domain.LedgerEntry `json:"history"`
}

type statsResponse struct {
	Stats *domain.ReportStats `json:"stats"`
}
