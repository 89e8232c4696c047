package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var caseNumberPattern = regexp.MustCompile(`^CARS-\d{6}-\d{3}$`)

func TestFormatCaseNumber(t *testing.T) {
	ts := time.UnixMilli(1_700_000_123_456)

	assert.Equal(t, "CARS-123456-007", FormatCaseNumber(ts, 7))
	assert.Equal(t, "CARS-123456-999", FormatCaseNumber(ts, 999))
	assert.Regexp(t, caseNumberPattern, FormatCaseNumber(time.UnixMilli(1_700_000_000_042), 0))
}

func TestReportStatus_Valid(t *testing.T) {
	for _, s := range []ReportStatus{StatusVerifying, StatusPending, StatusInProgress, StatusAwaitingVerification, StatusResolved, StatusClosed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ReportStatus("done").Valid())
	assert.False(t, ReportStatus("").Valid())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusVerifying, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusResolved))
	assert.True(t, CanTransition(StatusResolved, StatusResolved))
	assert.False(t, CanTransition(StatusResolved, StatusInProgress))
	assert.False(t, CanTransition(StatusVerifying, StatusResolved))
	assert.False(t, CanTransition(StatusClosed, StatusPending))
}

func TestValidPriority(t *testing.T) {
	assert.False(t, ValidPriority(0))
	assert.True(t, ValidPriority(1))
	assert.True(t, ValidPriority(5))
	assert.False(t, ValidPriority(6))
}

func TestReport_RelationTo(t *testing.T) {
	r := &Report{UserID: "a", PatrolUserID: "b"}
	assert.Equal(t, RelationOwner, r.RelationTo("a"))
	assert.Equal(t, RelationAssignedPatrol, r.RelationTo("b"))
	assert.Equal(t, RelationNone, r.RelationTo("c"))
	assert.Equal(t, RelationNone, r.RelationTo(""))

	self := &Report{UserID: "a", PatrolUserID: "a"}
	assert.Equal(t, RelationOwner|RelationAssignedPatrol, self.RelationTo("a"))
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]*Report{
		{Status: StatusResolved, Category: "Theft"},
		{Status: StatusResolved, Category: "Vandalism"},
		{Status: StatusPending, Category: "Theft"},
	})

	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 2, stats.ReportsByStatus["resolved"])
	assert.Equal(t, 1, stats.ReportsByStatus["pending"])
	assert.Equal(t, 2, stats.ReportsByCategory["Theft"])
	assert.Equal(t, 20, stats.TotalPoints)

	empty := ComputeStats(nil)
	assert.Equal(t, 0, empty.TotalReports)
	assert.Equal(t, 0, empty.TotalPoints)
	assert.NotNil(t, empty.ReportsByStatus)
}
