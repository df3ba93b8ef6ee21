package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. Stores hold entities by value and hand out copies, so
// callers mutate their own snapshot and only Update publishes it, mirroring
// how rows behave behind the real repositories. Update enforces the same
// conflict-token check as the database implementation.

type fakeTransactioner struct{}

func (fakeTransactioner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]entity.TimeSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[uuid.UUID]entity.TimeSlot{}}
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *entity.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot.ID] = *slot
	return nil
}

func (r *fakeSlotRepo) CreateBatch(ctx context.Context, slots []entity.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, slot := range slots {
		r.slots[slot.ID] = slot
	}
	return nil
}

func (r *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *fakeSlotRepo) FindByClinicianID(ctx context.Context, clinicianID uuid.UUID) ([]entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.TimeSlot
	for _, slot := range r.slots {
		if slot.ClinicianID == clinicianID {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) FindAvailableByClinicianAndDate(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := date.UTC().Truncate(24 * time.Hour)
	var result []entity.TimeSlot
	for _, slot := range r.slots {
		if slot.ClinicianID == clinicianID && slot.IsAvailable && !slot.Retired &&
			slot.StartTime.UTC().Truncate(24*time.Hour).Equal(day) {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) Update(ctx context.Context, slot *entity.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.slots[slot.ID]
	if !ok || stored.Version != slot.Version {
		return repository.ErrConcurrentModification
	}
	updated := *slot
	updated.Version = slot.Version + 1
	r.slots[slot.ID] = updated
	slot.Version++
	return nil
}

type fakeApptRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]entity.Appointment
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appointments: map[uuid.UUID]entity.Appointment{}}
}

func (r *fakeApptRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *fakeApptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *fakeApptRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID {
			result = append(result, appointment)
		}
	}
	return result, nil
}

func (r *fakeApptRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[appointment.ID]
	if !ok || stored.Version != appointment.Version {
		return repository.ErrConcurrentModification
	}
	updated := *appointment
	updated.Version = appointment.Version + 1
	r.appointments[appointment.ID] = updated
	appointment.Version++
	return nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]entity.PatientProfile
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]entity.PatientProfile{}}
}

func (r *fakePatientRepo) Create(ctx context.Context, profile *entity.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[profile.UserID] = *profile
	return nil
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.patients[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (s *fakeAuditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return nil
}

type fakeSlotCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *fakeSlotCache) GetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time) ([]entity.TimeSlot, bool) {
	return nil, false
}

func (c *fakeSlotCache) SetAvailable(ctx context.Context, clinicianID uuid.UUID, date time.Time, slots []entity.TimeSlot) {
}

func (c *fakeSlotCache) Invalidate(ctx context.Context, clinicianID uuid.UUID, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
}

type bookingFixture struct {
	usecase     BookingUsecase
	slotRepo    *fakeSlotRepo
	apptRepo    *fakeApptRepo
	patientRepo *fakePatientRepo
	audit       *fakeAuditService
	cache       *fakeSlotCache
	patientID   uuid.UUID
	clinicianID uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &bookingFixture{
		slotRepo:    newFakeSlotRepo(),
		apptRepo:    newFakeApptRepo(),
		patientRepo: newFakePatientRepo(),
		audit:       &fakeAuditService{},
		cache:       &fakeSlotCache{},
		patientID:   uuid.New(),
		clinicianID: uuid.New(),
	}
	f.usecase = NewBookingUsecase(log, fakeTransactioner{}, f.apptRepo, f.slotRepo, f.patientRepo, f.audit, f.cache)

	require.NoError(t, f.patientRepo.Create(context.Background(), &entity.PatientProfile{
		UserID:      f.patientID,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
	}))

	return f
}

func (f *bookingFixture) addSlot(t *testing.T, available bool) *entity.TimeSlot {
	t.Helper()

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	slot := &entity.TimeSlot{
		ID:          uuid.New(),
		ClinicianID: f.clinicianID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: available,
	}
	require.NoError(t, f.slotRepo.Create(context.Background(), slot))
	return slot
}

func (f *bookingFixture) book(t *testing.T) *dto.AppointmentResponse {
	t.Helper()

	slot := f.addSlot(t, true)
	appointment, err := f.usecase.CreateAppointment(context.Background(), f.patientID, &dto.CreateAppointmentRequest{
		TimeSlotID: slot.ID,
	})
	require.NoError(t, err)
	return appointment
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Reserves Slot And Creates Pending Appointment", func(t *testing.T) {
		f := newBookingFixture(t)
		slot := f.addSlot(t, true)

		appointment, err := f.usecase.CreateAppointment(ctx, f.patientID, &dto.CreateAppointmentRequest{
			TimeSlotID: slot.ID,
			Notes:      "first visit",
		})

		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusPending), appointment.Status)
		assert.Equal(t, slot.ID, appointment.TimeSlotID)
		assert.Equal(t, f.clinicianID, appointment.ClinicianID)

		stored, err := f.slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsAvailable)
		assert.Equal(t, int64(1), stored.Version)
		assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCreate)
	})

	t.Run("Reserved Slot Is Rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		slot := f.addSlot(t, false)

		_, err := f.usecase.CreateAppointment(ctx, f.patientID, &dto.CreateAppointmentRequest{TimeSlotID: slot.ID})

		assert.ErrorIs(t, err, entity.ErrSlotUnavailable)
	})

	t.Run("Unknown Slot", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.usecase.CreateAppointment(ctx, f.patientID, &dto.CreateAppointmentRequest{TimeSlotID: uuid.New()})

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("Retired Slot Is Not Bookable", func(t *testing.T) {
		f := newBookingFixture(t)
		slot := f.addSlot(t, true)
		stored, err := f.slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		stored.Retire()
		require.NoError(t, f.slotRepo.Update(ctx, stored))

		_, err = f.usecase.CreateAppointment(ctx, f.patientID, &dto.CreateAppointmentRequest{TimeSlotID: slot.ID})

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("Unknown Patient", func(t *testing.T) {
		f := newBookingFixture(t)
		slot := f.addSlot(t, true)

		_, err := f.usecase.CreateAppointment(ctx, uuid.New(), &dto.CreateAppointmentRequest{TimeSlotID: slot.ID})

		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestCreateAppointmentConcurrent(t *testing.T) {
	// Two patients race for the same slot. Exactly one booking must win; the
	// loser sees either the slot already reserved or a conflict-token failure,
	// depending on interleaving.
	f := newBookingFixture(t)
	slot := f.addSlot(t, true)

	otherPatient := uuid.New()
	require.NoError(t, f.patientRepo.Create(context.Background(), &entity.PatientProfile{
		UserID:      otherPatient,
		DateOfBirth: time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderMale,
	}))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, patientID := range []uuid.UUID{f.patientID, otherPatient} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := f.usecase.CreateAppointment(context.Background(), id, &dto.CreateAppointmentRequest{TimeSlotID: slot.ID})
			errs <- err
		}(patientID)
	}
	wg.Wait()
	close(errs)

	var successes, failures int
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		failures++
		assert.True(t,
			err == entity.ErrSlotUnavailable || err == repository.ErrConcurrentModification,
			"loser must get a retryable or unavailable error, got %v", err)
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)

	stored, err := f.slotRepo.FindByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAvailable)
	assert.Len(t, f.apptRepo.appointments, 1)
}

func TestConfirmAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending To Confirmed", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)

		confirmed, err := f.usecase.Confirm(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusConfirmed), confirmed.Status)
	})

	t.Run("Confirm Twice Fails", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Confirm(ctx, created.ID)
		require.NoError(t, err)

		_, err = f.usecase.Confirm(ctx, created.ID)

		assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	})

	t.Run("Unknown Appointment", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.usecase.Confirm(ctx, uuid.New())

		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCompleteAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed To Completed", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Confirm(ctx, created.ID)
		require.NoError(t, err)

		completed, err := f.usecase.Complete(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusCompleted), completed.Status)
	})

	t.Run("Pending Cannot Be Completed", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)

		_, err := f.usecase.Complete(ctx, created.ID)

		assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	})

	t.Run("Completed Slot Stays Reserved", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Confirm(ctx, created.ID)
		require.NoError(t, err)
		_, err = f.usecase.Complete(ctx, created.ID)
		require.NoError(t, err)

		slot, err := f.slotRepo.FindByID(ctx, created.TimeSlotID)
		require.NoError(t, err)
		assert.False(t, slot.IsAvailable)
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel Releases The Slot", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)

		cancelled, err := f.usecase.Cancel(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusCancelled), cancelled.Status)

		slot, err := f.slotRepo.FindByID(ctx, created.TimeSlotID)
		require.NoError(t, err)
		assert.True(t, slot.IsAvailable)
		assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCancel)
	})

	t.Run("Cancel Terminal Appointment Fails", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Cancel(ctx, created.ID)
		require.NoError(t, err)

		_, err = f.usecase.Cancel(ctx, created.ID)

		assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	})

	t.Run("Released Slot Can Be Rebooked", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Cancel(ctx, created.ID)
		require.NoError(t, err)

		rebooked, err := f.usecase.CreateAppointment(ctx, f.patientID, &dto.CreateAppointmentRequest{
			TimeSlotID: created.TimeSlotID,
		})

		require.NoError(t, err)
		assert.Equal(t, created.TimeSlotID, rebooked.TimeSlotID)
	})
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Swaps Slots Atomically", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		newSlot := f.addSlot(t, true)

		rescheduled, err := f.usecase.Reschedule(ctx, created.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: newSlot.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, newSlot.ID, rescheduled.TimeSlotID)

		old, err := f.slotRepo.FindByID(ctx, created.TimeSlotID)
		require.NoError(t, err)
		assert.True(t, old.IsAvailable)

		updated, err := f.slotRepo.FindByID(ctx, newSlot.ID)
		require.NoError(t, err)
		assert.False(t, updated.IsAvailable)
	})

	t.Run("Reserved Target Leaves Old Reservation Standing", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		taken := f.addSlot(t, false)

		_, err := f.usecase.Reschedule(ctx, created.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: taken.ID,
		})

		assert.ErrorIs(t, err, entity.ErrSlotUnavailable)

		old, err := f.slotRepo.FindByID(ctx, created.TimeSlotID)
		require.NoError(t, err)
		assert.False(t, old.IsAvailable, "old slot must stay reserved when reschedule fails")

		appointment, err := f.apptRepo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.TimeSlotID, appointment.TimeSlotID)
	})

	t.Run("Unknown Target Slot", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)

		_, err := f.usecase.Reschedule(ctx, created.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: uuid.New(),
		})

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("Terminal Appointment Cannot Be Rescheduled", func(t *testing.T) {
		f := newBookingFixture(t)
		created := f.book(t)
		_, err := f.usecase.Cancel(ctx, created.ID)
		require.NoError(t, err)
		newSlot := f.addSlot(t, true)

		_, err = f.usecase.Reschedule(ctx, created.ID, &dto.RescheduleAppointmentRequest{
			NewTimeSlotID: newSlot.ID,
		})

		assert.ErrorIs(t, err, entity.ErrInvalidTransition)

		target, err := f.slotRepo.FindByID(ctx, newSlot.ID)
		require.NoError(t, err)
		assert.True(t, target.IsAvailable)
	})
}

func TestListByPatient(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t)
	f.book(t)

	list, err := f.usecase.ListByPatient(context.Background(), f.patientID)

	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Appointments, 2)
}

func TestGetByID(t *testing.T) {
	f := newBookingFixture(t)
	created := f.book(t)

	found, err := f.usecase.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.usecase.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
