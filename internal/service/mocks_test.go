package service

import (
	"context"
	"sort"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/repository"
)

// In-memory repository fakes. Not safe for concurrent use; service tests
// are sequential.

type mockUserRepo struct {
	users map[string]*domain.User // by ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int, error) {
	var all []*domain.User
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, limit), len(all), nil
}

type mockAdminRepo struct {
	admins map[string]*domain.Admin // by email
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	a, ok := m.admins[email]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (m *mockAdminRepo) EnsureDefault(_ context.Context, admin *domain.Admin) error {
	if _, ok := m.admins[admin.Email]; !ok {
		m.admins[admin.Email] = admin
	}
	return nil
}

type mockEventRepo struct {
	events map[string]*domain.Event
	regs   *mockRegistrationRepo
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*domain.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *domain.Event) error {
	cp := *event
	m.events[event.ID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventRepo) List(_ context.Context, filter repository.EventFilter) ([]*domain.Event, int, error) {
	var all []*domain.Event
	for _, e := range m.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return paginate(all, filter.Page, filter.Limit), len(all), nil
}

func (m *mockEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *event
	m.events[event.ID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) CountRegistrations(_ context.Context, eventID string) (int, error) {
	if m.regs == nil {
		return 0, nil
	}
	return m.regs.countByEvent(eventID), nil
}

func (m *mockEventRepo) Count(_ context.Context) (int, error) {
	return len(m.events), nil
}

func (m *mockEventRepo) Analytics(_ context.Context, eventID string) (*domain.EventAnalytics, error) {
	analytics := &domain.EventAnalytics{RegistrationBreakdown: make(map[string]int)}
	if m.regs == nil {
		return analytics, nil
	}
	for _, r := range m.regs.regs {
		if r.EventID != eventID {
			continue
		}
		analytics.TotalRegistrations++
		analytics.TotalTickets += r.TicketQuantity
		analytics.RegistrationBreakdown[r.PaymentStatus]++
		analytics.RecentRegistrations = append(analytics.RecentRegistrations, r)
	}
	return analytics, nil
}

type mockRegistrationRepo struct {
	regs   map[string]*domain.Registration
	events *mockEventRepo
}

func newMockRegistrationRepo(events *mockEventRepo) *mockRegistrationRepo {
	m := &mockRegistrationRepo{
		regs:   make(map[string]*domain.Registration),
		events: events,
	}
	if events != nil {
		events.regs = m
	}
	return m
}

func (m *mockRegistrationRepo) countByEvent(eventID string) int {
	count := 0
	for _, r := range m.regs {
		if r.EventID == eventID {
			count++
		}
	}
	return count
}

func (m *mockRegistrationRepo) CreateReserving(_ context.Context, reg *domain.Registration) error {
	event, ok := m.events.events[reg.EventID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, r := range m.regs {
		if r.EventID == reg.EventID && r.UserID == reg.UserID {
			return repository.ErrAlreadyRegistered
		}
	}
	if event.Capacity != nil && m.countByEvent(reg.EventID)+reg.TicketQuantity > *event.Capacity {
		return repository.ErrCapacityExceeded
	}
	cp := *reg
	m.regs[reg.ID] = &cp
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r, ok := m.regs[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockRegistrationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepo) List(_ context.Context, page, limit int) ([]*domain.Registration, int, error) {
	var all []*domain.Registration
	for _, r := range m.regs {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, limit), len(all), nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.regs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.regs, id)
	return nil
}

func (m *mockRegistrationRepo) UpdatePaymentStatus(_ context.Context, id, status, reference string) error {
	r, ok := m.regs[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.PaymentStatus = status
	r.PaymentReference = reference
	return nil
}

type mockPaymentRepo struct {
	payments map[string]*domain.Payment
	regs     *mockRegistrationRepo
}

func newMockPaymentRepo(regs *mockRegistrationRepo) *mockPaymentRepo {
	return &mockPaymentRepo{
		payments: make(map[string]*domain.Payment),
		regs:     regs,
	}
}

func (m *mockPaymentRepo) ProcessInTx(ctx context.Context, payment *domain.Payment) error {
	if err := m.regs.UpdatePaymentStatus(ctx, payment.RegistrationID, domain.PaymentStatusPaid, payment.Reference); err != nil {
		return err
	}
	cp := *payment
	m.payments[payment.ID] = &cp
	return nil
}

func (m *mockPaymentRepo) RefundInTx(ctx context.Context, refund *domain.Payment, originalID string) error {
	original, ok := m.payments[originalID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := m.regs.UpdatePaymentStatus(ctx, refund.RegistrationID, domain.PaymentStatusRefunded, ""); err != nil {
		return err
	}
	original.Status = domain.PaymentStatusRefunded
	cp := *refund
	m.payments[refund.ID] = &cp
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPaymentRepo) ListByRegistration(_ context.Context, registrationID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.RegistrationID == registrationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) List(_ context.Context, page, limit int) ([]*domain.Payment, int, error) {
	var all []*domain.Payment
	for _, p := range m.payments {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, limit), len(all), nil
}

type mockStatsRepo struct {
	stats domain.AdminStats
}

func (m *mockStatsRepo) Stats(_ context.Context) (*domain.AdminStats, error) {
	cp := m.stats
	return &cp, nil
}

func paginate[T any](all []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
