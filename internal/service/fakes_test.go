package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = fixedNow, fixedNow
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeVendors struct {
	byID    map[string]*domain.Vendor
	reviews *fakeReviews
}

func newFakeVendors(vendors ...*domain.Vendor) *fakeVendors {
	f := &fakeVendors{byID: map[string]*domain.Vendor{}}
	for _, v := range vendors {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVendors) Create(_ context.Context, v *domain.Vendor) error {
	v.ID = uuid.NewString()
	v.CreatedAt, v.UpdatedAt = fixedNow, fixedNow
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVendors) Update(_ context.Context, v *domain.Vendor) error {
	if _, ok := f.byID[v.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVendors) GetByID(_ context.Context, id string) (*domain.Vendor, error) {
	if v, ok := f.byID[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeVendors) GetByUserID(_ context.Context, userID string) (*domain.Vendor, error) {
	for _, v := range f.byID {
		if v.UserID == userID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeVendors) List(_ context.Context, filter repository.VendorFilter) ([]domain.Vendor, error) {
	var out []domain.Vendor
	for _, v := range f.byID {
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && !strings.EqualFold(v.Category, *filter.Category) {
			continue
		}
		if filter.FeaturedOnly && !v.Featured {
			continue
		}
		if v.ReviewCount < filter.MinReviews {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.OrderByRating && out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeVendors) ListForEventType(_ context.Context, eventType string, limit int) ([]domain.Vendor, error) {
	var out []domain.Vendor
	for _, v := range f.byID {
		if v.Status == domain.VendorStatusApproved {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		mi, mj := strings.EqualFold(out[i].Category, eventType), strings.EqualFold(out[j].Category, eventType)
		if mi != mj {
			return mi
		}
		return out[i].Rating > out[j].Rating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVendors) SetStatus(_ context.Context, id string, status domain.VendorStatus, reason string) (*domain.Vendor, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	v.Status, v.RejectionReason = status, reason
	cp := *v
	return &cp, nil
}

func (f *fakeVendors) RefreshRating(_ context.Context, id string) (*domain.Vendor, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	var sum, n int
	if f.reviews != nil {
		for _, r := range f.reviews.byID {
			if r.VendorID == id {
				sum += r.Rating
				n++
			}
		}
	}
	v.ReviewCount = n
	v.Rating = 0
	if n > 0 {
		v.Rating = float64(sum) / float64(n)
	}
	cp := *v
	return &cp, nil
}

type fakeReviews struct {
	byID map[string]*domain.Review
}

func newFakeReviews() *fakeReviews { return &fakeReviews{byID: map[string]*domain.Review{}} }

func (f *fakeReviews) Create(_ context.Context, r *domain.Review) error {
	r.ID = uuid.NewString()
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReviews) Update(_ context.Context, r *domain.Review) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReviews) GetByID(_ context.Context, id string) (*domain.Review, error) {
	if r, ok := f.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReviews) GetByVendorAndUser(_ context.Context, vendorID, userID string) (*domain.Review, error) {
	for _, r := range f.byID {
		if r.VendorID == vendorID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReviews) ListByVendor(_ context.Context, vendorID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.byID {
		if r.VendorID == vendorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.byID {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePackages struct {
	byID map[string]*domain.VendorPackage
}

func newFakePackages(pkgs ...*domain.VendorPackage) *fakePackages {
	f := &fakePackages{byID: map[string]*domain.VendorPackage{}}
	for _, p := range pkgs {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePackages) Create(_ context.Context, p *domain.VendorPackage) error {
	p.ID = uuid.NewString()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePackages) Update(_ context.Context, p *domain.VendorPackage) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePackages) Delete(_ context.Context, vendorID, id string) error {
	p, ok := f.byID[id]
	if !ok || p.VendorID != vendorID {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePackages) GetByID(_ context.Context, id string) (*domain.VendorPackage, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePackages) ListByVendor(_ context.Context, vendorID string) ([]domain.VendorPackage, error) {
	var out []domain.VendorPackage
	for _, p := range f.byID {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeEvents struct {
	byID map[string]*domain.Event
}

func newFakeEvents(evts ...*domain.Event) *fakeEvents {
	f := &fakeEvents{byID: map[string]*domain.Event{}}
	for _, e := range evts {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEvents) Create(_ context.Context, e *domain.Event) error {
	e.ID = uuid.NewString()
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Update(_ context.Context, e *domain.Event) error {
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEvents) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEvents) ListByUser(_ context.Context, userID string) ([]domain.Event, error) {
	return f.filter(func(e *domain.Event) bool { return e.UserID == userID }), nil
}

func (f *fakeEvents) ListUpcomingByUser(_ context.Context, userID string, from time.Time) ([]domain.Event, error) {
	return f.filter(func(e *domain.Event) bool {
		return e.UserID == userID && !e.EventDate.Before(from) && e.Status != domain.EventStatusCancelled
	}), nil
}

func (f *fakeEvents) ListStartingBetween(_ context.Context, from, to time.Time) ([]domain.Event, error) {
	return f.filter(func(e *domain.Event) bool {
		return !e.EventDate.Before(from) && e.EventDate.Before(to)
	}), nil
}

func (f *fakeEvents) filter(keep func(*domain.Event) bool) []domain.Event {
	var out []domain.Event
	for _, e := range f.byID {
		if keep(e) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out
}

type fakeChats struct {
	byID map[string]*domain.Chat
}

func newFakeChats() *fakeChats { return &fakeChats{byID: map[string]*domain.Chat{}} }

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeChats) FindOrCreate(_ context.Context, c *domain.Chat) (*domain.Chat, bool, error) {
	for _, existing := range f.byID {
		if existing.Kind == c.Kind && strPtrEq(existing.UserID, c.UserID) &&
			strPtrEq(existing.VendorID, c.VendorID) && strPtrEq(existing.PeerVendorID, c.PeerVendorID) {
			cp := *existing
			return &cp, false, nil
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = fixedNow
	cp := *c
	f.byID[c.ID] = &cp
	out := cp
	return &out, true, nil
}

func (f *fakeChats) GetByID(_ context.Context, id string) (*domain.Chat, error) {
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeChats) ListByUser(_ context.Context, userID string) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range f.byID {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChats) ListByVendor(_ context.Context, vendorID string) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range f.byID {
		if (c.VendorID != nil && *c.VendorID == vendorID) || (c.PeerVendorID != nil && *c.PeerVendorID == vendorID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChats) ListByKind(_ context.Context, kind domain.ChatKind) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range f.byID {
		if c.Kind == kind {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChats) TouchLastMessage(_ context.Context, chatID, preview string, at time.Time) error {
	c, ok := f.byID[chatID]
	if !ok {
		return pgx.ErrNoRows
	}
	c.LastMessage = preview
	c.LastMessageAt = &at
	return nil
}

type fakeMessages struct {
	items []*domain.Message
}

func (f *fakeMessages) Create(_ context.Context, m *domain.Message) error {
	m.ID = uuid.NewString()
	m.CreatedAt = fixedNow.Add(time.Duration(len(f.items)) * time.Second)
	cp := *m
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeMessages) ListByChat(_ context.Context, chatID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.items {
		if m.ChatID == chatID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessages) MarkSeen(_ context.Context, chatID, readerID string) (int64, error) {
	var n int64
	for _, m := range f.items {
		if m.ChatID == chatID && m.SenderID != readerID && !m.Seen {
			m.Seen = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessages) CountUnread(ctx context.Context, userID string, includeSupport bool) (int64, error) {
	msgs, err := f.ListUnread(ctx, userID, includeSupport)
	return int64(len(msgs)), err
}

func (f *fakeMessages) ListUnread(_ context.Context, userID string, _ bool) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.items {
		if m.SenderID != userID && !m.Seen {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeContracts struct {
	byID map[string]*domain.Contract
}

func newFakeContracts(cs ...*domain.Contract) *fakeContracts {
	f := &fakeContracts{byID: map[string]*domain.Contract{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeContracts) Create(_ context.Context, c *domain.Contract) error {
	c.ID = uuid.NewString()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeContracts) GetByID(_ context.Context, id string) (*domain.Contract, error) {
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeContracts) List(_ context.Context) ([]domain.Contract, error) {
	return f.filter(func(*domain.Contract) bool { return true }), nil
}

func (f *fakeContracts) ListByEvent(_ context.Context, eventID string) ([]domain.Contract, error) {
	return f.filter(func(c *domain.Contract) bool { return c.EventID == eventID }), nil
}

func (f *fakeContracts) ListByUser(_ context.Context, userID string) ([]domain.Contract, error) {
	return f.filter(func(c *domain.Contract) bool { return c.UserID == userID }), nil
}

func (f *fakeContracts) ListDueUnpaid(_ context.Context, from, to time.Time) ([]domain.Contract, error) {
	return f.filter(func(c *domain.Contract) bool {
		unpaid := c.Status == domain.ContractStatusPending || c.Status == domain.ContractStatusSigned
		return unpaid && !c.PaymentDeadline.Before(from) && c.PaymentDeadline.Before(to)
	}), nil
}

func (f *fakeContracts) filter(keep func(*domain.Contract) bool) []domain.Contract {
	var out []domain.Contract
	for _, c := range f.byID {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakePayments struct {
	contracts *fakeContracts
	items     []*domain.Payment
}

func (f *fakePayments) CreateAndSettle(_ context.Context, p *domain.Payment) (*domain.Contract, error) {
	c, ok := f.contracts.byID[p.ContractID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	var paid float64
	for _, existing := range f.items {
		if existing.ContractID == p.ContractID {
			paid += existing.Amount
		}
	}
	if p.Amount > c.TotalFee-paid+0.005 {
		return nil, repository.ErrPaymentExceedsBalance
	}
	p.ID = uuid.NewString()
	p.CreatedAt = fixedNow
	cp := *p
	f.items = append(f.items, &cp)
	if paid+p.Amount >= c.TotalFee-0.005 {
		c.Status = domain.ContractStatusPaid
	}
	out := *c
	return &out, nil
}

func (f *fakePayments) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePayments) ListByContract(_ context.Context, contractID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.items {
		if p.ContractID == contractID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	items []*domain.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *domain.Notification) error {
	n.ID = uuid.NewString()
	n.CreatedAt = fixedNow
	cp := *n
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID string) (int64, error) {
	var c int64
	for _, n := range f.items {
		if n.UserID == userID && !n.Read {
			c++
		}
	}
	return c, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string) error {
	for _, n := range f.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var c int64
	for _, n := range f.items {
		if n.UserID == userID && !n.Read {
			n.Read = true
			c++
		}
	}
	return c, nil
}

func (f *fakeNotifications) Delete(_ context.Context, userID, id string) error {
	for i, n := range f.items {
		if n.ID == id && n.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotifications) forUser(userID string) []domain.Notification {
	out, _ := f.ListByUser(context.Background(), userID, 1000)
	return out
}

type fakeActivities struct {
	items []domain.Activity
}

func (f *fakeActivities) Create(_ context.Context, a *domain.Activity) error {
	a.ID = uuid.NewString()
	f.items = append(f.items, *a)
	return nil
}

func (f *fakeActivities) ListByUser(_ context.Context, userID string, limit int) ([]domain.Activity, error) {
	var out []domain.Activity
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

type fakeStats struct {
	dashboard *domain.DashboardStats
	calls     int
	growth    []domain.GrowthPoint
	since     time.Time
}

func (f *fakeStats) Dashboard(context.Context) (*domain.DashboardStats, error) {
	f.calls++
	cp := *f.dashboard
	return &cp, nil
}

func (f *fakeStats) Growth(_ context.Context, since time.Time) ([]domain.GrowthPoint, error) {
	f.since = since
	return f.growth, nil
}

// recorder captures every published event.
type recorder struct {
	events.Dispatcher
	seen []events.Event
}

func newRecorder() *recorder {
	r := &recorder{Dispatcher: events.NewInMemoryDispatcher()}
	r.SubscribeAll(func(_ context.Context, e events.Event) error {
		r.seen = append(r.seen, e)
		return nil
	})
	return r
}

func (r *recorder) types() []events.EventType {
	out := make([]events.EventType, len(r.seen))
	for i, e := range r.seen {
		out[i] = e.Type
	}
	return out
}

func user(id string, role domain.UserRole) *domain.User {
	return &domain.User{ID: id, Name: strings.ToUpper(id[:1]) + id[1:], Email: id + "@example.com", Role: role, Status: domain.UserStatusActive}
}

func approvedVendor(id, ownerID, category string) *domain.Vendor {
	return &domain.Vendor{ID: id, UserID: ownerID, BusinessName: "Biz " + id, Category: category, Status: domain.VendorStatusApproved}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.ToDomainError(err).Code)
}
