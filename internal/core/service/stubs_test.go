package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error // if set, Create returns this error
	touched   []string
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate, at time.Time) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.DisplayName != "" {
		u.DisplayName = upd.DisplayName
	}
	if upd.PhotoURL != "" {
		u.PhotoURL = upd.PhotoURL
	}
	u.LastActive = at
	u.UpdatedAt = at
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Touch(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastActive = at
	r.touched = append(r.touched, id)
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	return nil
}

func (r *stubUserRepo) SetBanned(_ context.Context, id string, banned bool, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsBanned = banned
	u.UpdatedAt = at
	return nil
}

func (r *stubUserRepo) sorted(less func(a, b *domain.User) bool) []*domain.User {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.sorted(func(a, b *domain.User) bool { return a.ID < b.ID }) {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		matched = append(matched, u)
	}
	return paginate(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (r *stubUserRepo) TopByPoints(_ context.Context, limit int) ([]*domain.User, error) {
	all := r.sorted(func(a, b *domain.User) bool { return a.Points > b.Points })
	return paginate(all, limit, 0), nil
}

type stubReportRepo struct {
	reports   map[string]*domain.Report
	createErr error
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func (r *stubReportRepo) put(rep *domain.Report) {
	clone := *rep
	r.reports[rep.ID] = &clone
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.Report) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.put(rep)
	return nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	clone := *rep
	return &clone, nil
}

func (r *stubReportRepo) List(_ context.Context, f ports.ListReportsFilter) ([]*domain.Report, int64, error) {
	var matched []*domain.Report
	for _, rep := range r.reports {
		if f.OwnerID != "" && rep.UserID != f.OwnerID {
			continue
		}
		if f.PatrolID != "" && rep.PatrolUserID != f.PatrolID {
			continue
		}
		if f.Status != "" && string(rep.Status) != f.Status {
			continue
		}
		clone := *rep
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func (r *stubReportRepo) mutate(id string, fn func(*domain.Report)) error {
	rep, ok := r.reports[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	fn(rep)
	return nil
}

func (r *stubReportRepo) UpdateStatus(_ context.Context, id string, status domain.ReportStatus, at time.Time) error {
	return r.mutate(id, func(rep *domain.Report) { rep.Status = status; rep.UpdatedAt = at })
}

func (r *stubReportRepo) Assign(_ context.Context, id, patrolID string, at time.Time) error {
	return r.mutate(id, func(rep *domain.Report) { rep.PatrolUserID = patrolID; rep.UpdatedAt = at })
}

func (r *stubReportRepo) UpdatePriority(_ context.Context, id string, priority int, at time.Time) error {
	return r.mutate(id, func(rep *domain.Report) { rep.PriorityLevel = priority; rep.UpdatedAt = at })
}

func (r *stubReportRepo) AddProofImages(_ context.Context, id string, urls []string, at time.Time) error {
	return r.mutate(id, func(rep *domain.Report) { rep.ProofImages = append(rep.ProofImages, urls...); rep.UpdatedAt = at })
}

func (r *stubReportRepo) CountResolvedByOwner(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, rep := range r.reports {
		if rep.Status == domain.StatusResolved {
			counts[rep.UserID]++
		}
	}
	return counts, nil
}

// stubLedger applies entries to the stub repositories the way the
// transactional Mongo ledger does.
type stubLedger struct {
	users     *stubUserRepo
	reports   *stubReportRepo
	entries   []*domain.LedgerEntry
	adjustErr error
}

func (l *stubLedger) Adjust(_ context.Context, e *domain.LedgerEntry) error {
	if l.adjustErr != nil {
		return l.adjustErr
	}
	u, ok := l.users.users[e.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Points += e.Points
	clone := *e
	l.entries = append(l.entries, &clone)
	return nil
}

func (l *stubLedger) AwardResolution(ctx context.Context, reportID string, at time.Time, e *domain.LedgerEntry) (bool, error) {
	rep, ok := l.reports.reports[reportID]
	if !ok {
		return false, domain.ErrReportNotFound
	}
	if !rep.PointsAwarded {
		if err := l.Adjust(ctx, e); err != nil {
			return false, err
		}
	}
	awarded := !rep.PointsAwarded
	rep.Status = domain.StatusResolved
	rep.UpdatedAt = at
	rep.PointsAwarded = true
	return awarded, nil
}

func (l *stubLedger) History(_ context.Context, userID string, limit int) ([]*domain.LedgerEntry, error) {
	var out []*domain.LedgerEntry
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].UserID == userID {
			out = append(out, l.entries[i])
		}
	}
	return paginate(out, limit, 0), nil
}

type stubMessageRepo struct {
	messages []*domain.Message
	deleted  []string
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *stubMessageRepo) List(_ context.Context, f ports.MessageFilter) ([]*domain.Message, error) {
	var matched []*domain.Message
	for _, m := range r.messages {
		if f.SenderID != "" && m.UserID != f.SenderID && !(f.IncludeAdminReplies && m.IsAdminReply) {
			continue
		}
		matched = append(matched, m)
	}
	return paginate(matched, f.Limit, f.Offset), nil
}

func (r *stubMessageRepo) DistinctSenders(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for i := len(r.messages) - 1; i >= 0; i-- {
		if id := r.messages[i].UserID; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *stubMessageRepo) LatestBySender(_ context.Context, senderID string) (*domain.Message, error) {
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].UserID == senderID {
			return r.messages[i], nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			break
		}
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func testUser(id string, role domain.Role) *domain.User {
	u := domain.NewUser(id, id+" name", id+"@example.com", "", time.Now().UTC())
	u.Role = role
	return u
}

func callerOf(u *domain.User) domain.Caller {
	return domain.CallerFromUser(u)
}

type fixture struct {
	users   *stubUserRepo
	reports *stubReportRepo
	ledger  *stubLedger
}

func newFixture(users ...*domain.User) *fixture {
	u := newStubUserRepo(users...)
	r := newStubReportRepo()
	return &fixture{users: u, reports: r, ledger: &stubLedger{users: u, reports: r}}
}
