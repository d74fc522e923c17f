package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var (
	_ repository.BookingRepository            = (*BookingRepo)(nil)
	_ repository.JobRepository                = (*JobRepo)(nil)
	_ repository.SanitisationRecordRepository = (*SanitisationRecordRepo)(nil)
	_ repository.GradingRecordRepository      = (*GradingRecordRepo)(nil)
	_ repository.CommissionRepository         = (*CommissionRepo)(nil)
	_ repository.InvoiceRepository            = (*InvoiceRepo)(nil)
	_ repository.UserRepository               = (*UserRepo)(nil)
)

// BookingRepo is the in-memory BookingRepository.
type BookingRepo struct {
	s *Store
}

func (r *BookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(b), nil
}

// GetForUpdate is GetByID here; the TxRunner's lock provides the serialization
// that FOR UPDATE provides on PostgreSQL.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Booking
	for _, b := range r.s.bookings {
		if status != "" && string(b.Status) != status {
			continue
		}
		all = append(all, copyBooking(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *BookingRepo) Update(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *BookingRepo) AdvanceIf(_ context.Context, id string, from, to entity.BookingStatus, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	stampBookingMilestone(b, to, now)
	b.UpdatedAt = now
	return true, nil
}

func stampBookingMilestone(b *entity.Booking, to entity.BookingStatus, now time.Time) {
	set := func(t **time.Time) {
		if *t == nil {
			ts := now
			*t = &ts
		}
	}
	switch to {
	case entity.BookingScheduled:
		set(&b.ScheduledAt)
	case entity.BookingCollected:
		set(&b.CollectedAt)
	case entity.BookingSanitised:
		set(&b.SanitisedAt)
	case entity.BookingGraded:
		set(&b.GradedAt)
	case entity.BookingCompleted:
		set(&b.CompletedAt)
	case entity.BookingCancelled:
		set(&b.CancelledAt)
	}
}

// JobRepo is the in-memory JobRepository.
type JobRepo struct {
	s *Store
}

func (r *JobRepo) Create(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.jobs {
		if existing.BookingID == j.BookingID {
			return domain.ErrDuplicate
		}
	}
	r.s.jobs[j.ID] = copyJob(j)
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	return copyJob(j), nil
}

func (r *JobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	return r.GetByID(ctx, id)
}

func (r *JobRepo) GetByBookingID(_ context.Context, bookingID string) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.jobs {
		if j.BookingID == bookingID {
			return copyJob(j), nil
		}
	}
	return nil, nil
}

func (r *JobRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Job
	for _, j := range r.s.jobs {
		if status != "" && string(j.Status) != status {
			continue
		}
		all = append(all, copyJob(j))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *JobRepo) ListByDriver(_ context.Context, driverID string, limit, offset int) ([]*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Job
	for _, j := range r.s.jobs {
		if j.DriverID == driverID {
			all = append(all, copyJob(j))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *JobRepo) Update(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[j.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.jobs[j.ID] = copyJob(j)
	return nil
}

func (r *JobRepo) AdvanceIf(_ context.Context, id string, from, to entity.JobStatus, completedAt *time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok || j.Status != from {
		return false, nil
	}
	j.Status = to
	if completedAt != nil && j.CompletedDate == nil {
		ts := *completedAt
		j.CompletedDate = &ts
	}
	j.UpdatedAt = time.Now().UTC()
	return true, nil
}

// SanitisationRecordRepo is the in-memory SanitisationRecordRepository.
type SanitisationRecordRepo struct {
	s *Store
}

func (r *SanitisationRecordRepo) Create(_ context.Context, rec *entity.SanitisationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.sanitisations[rec.ID] = &cp
	return nil
}

func (r *SanitisationRecordRepo) GetByID(_ context.Context, id string) (*entity.SanitisationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.sanitisations[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *SanitisationRecordRepo) ListByBooking(_ context.Context, bookingID string) ([]*entity.SanitisationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SanitisationRecord
	for _, rec := range r.s.sanitisations {
		if rec.BookingID == bookingID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *SanitisationRecordRepo) DistinctCategories(_ context.Context, bookingID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range r.s.sanitisations {
		if rec.BookingID != bookingID {
			continue
		}
		if _, ok := seen[rec.AssetCategoryID]; ok {
			continue
		}
		seen[rec.AssetCategoryID] = struct{}{}
		out = append(out, rec.AssetCategoryID)
	}
	return out, nil
}

func (r *SanitisationRecordRepo) SetVerified(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.sanitisations[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Verified = true
	return nil
}

// GradingRecordRepo is the in-memory GradingRecordRepository.
type GradingRecordRepo struct {
	s *Store
}

func (r *GradingRecordRepo) Create(_ context.Context, rec *entity.GradingRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.gradings[rec.ID] = &cp
	return nil
}

func (r *GradingRecordRepo) GetByID(_ context.Context, id string) (*entity.GradingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.gradings[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *GradingRecordRepo) ListByBooking(_ context.Context, bookingID string) ([]*entity.GradingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.GradingRecord
	for _, rec := range r.s.gradings {
		if rec.BookingID == bookingID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GradingRecordRepo) DistinctCategories(_ context.Context, bookingID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range r.s.gradings {
		if rec.BookingID != bookingID {
			continue
		}
		if _, ok := seen[rec.AssetCategoryID]; ok {
			continue
		}
		seen[rec.AssetCategoryID] = struct{}{}
		out = append(out, rec.AssetCategoryID)
	}
	return out, nil
}

func (r *GradingRecordRepo) SetVerified(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.gradings[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Verified = true
	return nil
}

// CommissionRepo is the in-memory CommissionRepository.
type CommissionRepo struct {
	s *Store
}

func (r *CommissionRepo) Create(_ context.Context, c *entity.Commission) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.commissions {
		if existing.BookingID == c.BookingID {
			return false, nil
		}
	}
	r.s.commissions[c.ID] = copyCommission(c)
	return true, nil
}

func (r *CommissionRepo) GetByID(_ context.Context, id string) (*entity.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.commissions[id]
	if !ok {
		return nil, nil
	}
	return copyCommission(c), nil
}

func (r *CommissionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Commission, error) {
	return r.GetByID(ctx, id)
}

func (r *CommissionRepo) GetByBookingID(_ context.Context, bookingID string) (*entity.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.commissions {
		if c.BookingID == bookingID {
			return copyCommission(c), nil
		}
	}
	return nil, nil
}

func (r *CommissionRepo) List(_ context.Context, status, period string, limit, offset int) ([]*entity.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Commission
	for _, c := range r.s.commissions {
		if status != "" && string(c.Status) != status {
			continue
		}
		if period != "" && c.Period != period {
			continue
		}
		all = append(all, copyCommission(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *CommissionRepo) Update(_ context.Context, c *entity.Commission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.commissions[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.commissions[c.ID] = copyCommission(c)
	return nil
}

// InvoiceRepo is the in-memory InvoiceRepository.
type InvoiceRepo struct {
	s *Store
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invoices {
		if existing.BookingID == inv.BookingID {
			return false, nil
		}
	}
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return true, nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) GetByBookingID(_ context.Context, bookingID string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.BookingID == bookingID {
			return copyInvoice(inv), nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Invoice
	for _, inv := range r.s.invoices {
		if status != "" && string(inv.Status) != status {
			continue
		}
		all = append(all, copyInvoice(inv))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

// UserRepo is the in-memory UserRepository.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
