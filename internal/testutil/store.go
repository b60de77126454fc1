// Package testutil provides an in-memory implementation of the scheduling
// stores and unit of work for use-case and handler tests.
package testutil

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	avdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type txKey struct{}

// Store keeps every table in maps. Do runs one transaction at a time and
// restores the previous state when fn fails or CommitErr is set.
type Store struct {
	// CommitErr, when set, fails every Do after fn succeeds.
	CommitErr error

	txMu sync.Mutex
	mu   sync.Mutex

	doctors        map[uuid.UUID]models.Doctor
	clients        map[uuid.UUID]models.Client
	availabilities map[uuid.UUID]models.Availability
	appointments   map[uuid.UUID]models.Appointment
}

var (
	_ avdomain.Repository = (*Store)(nil)
	_ apdomain.Repository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		doctors:        map[uuid.UUID]models.Doctor{},
		clients:        map[uuid.UUID]models.Client{},
		availabilities: map[uuid.UUID]models.Availability{},
		appointments:   map[uuid.UUID]models.Appointment{},
	}
}

// ===============================
// Unit of Work
// ===============================

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	avs := maps.Clone(s.availabilities)
	aps := maps.Clone(s.appointments)
	s.mu.Unlock()

	err := fn(context.WithValue(ctx, txKey{}, true))
	if err == nil {
		err = s.CommitErr
	}
	if err != nil {
		s.mu.Lock()
		s.availabilities = avs
		s.appointments = aps
		s.mu.Unlock()
	}
	return err
}

// ===============================
// Fixtures
// ===============================

func (s *Store) AddDoctor(name, speciality string) models.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.Doctor{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		SpecialityID: uuid.New(),
		CRM:          "CRM-0001",
	}
	doc.User = models.User{ID: doc.UserID, Name: name, Role: models.RoleDoctor}
	doc.Speciality = models.Speciality{ID: doc.SpecialityID, Name: speciality}

	s.doctors[doc.ID] = doc
	return doc
}

func (s *Store) AddClient(name string) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := models.Client{ID: uuid.New(), UserID: uuid.New()}
	client.User = models.User{ID: client.UserID, Name: name, Role: models.RoleClient}

	s.clients[client.ID] = client
	return client
}

func (s *Store) AddAvailability(doctorID uuid.UUID, start time.Time, durationMinutes int, booked bool) models.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()

	av := models.Availability{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		SlotStart:       start,
		DurationMinutes: durationMinutes,
		IsBooked:        booked,
		Version:         1,
	}
	s.availabilities[av.ID] = av
	return av
}

func (s *Store) AvailabilityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, av := range s.availabilities {
		if !av.DeletedAt.Valid {
			n++
		}
	}
	return n
}

func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// ===============================
// Doctor / Client
// ===============================

func (s *Store) LockDoctor(ctx context.Context, doctorID uuid.UUID) (*models.Doctor, error) {
	doc, err := s.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, avdomain.ErrDoctorNotFound
	}
	return doc, nil
}

func (s *Store) GetDoctorByID(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.doctors[id]
	if !ok {
		return nil, apdomain.ErrDoctorNotFound
	}
	return &doc, nil
}

func (s *Store) GetClientByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, apdomain.ErrClientNotFound
	}
	return &client, nil
}

// ===============================
// Availability
// ===============================

func (s *Store) CreateAvailability(_ context.Context, av *models.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if av.ID == uuid.Nil {
		av.ID = uuid.New()
	}
	if av.Version == 0 {
		av.Version = 1
	}
	av.CreatedAt = time.Now()
	av.UpdatedAt = av.CreatedAt

	row := *av
	row.Doctor = models.Doctor{}
	s.availabilities[av.ID] = row
	return nil
}

func (s *Store) withDoctor(av models.Availability) models.Availability {
	av.Doctor = s.doctors[av.DoctorID]
	return av
}

func (s *Store) GetAvailabilityByID(_ context.Context, id uuid.UUID) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	av, ok := s.availabilities[id]
	if !ok || av.DeletedAt.Valid {
		return nil, avdomain.ErrNotFound
	}
	av = s.withDoctor(av)
	return &av, nil
}

func (s *Store) ListAvailabilitiesByDoctor(_ context.Context, doctorID uuid.UUID) ([]models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Availability
	for _, av := range s.availabilities {
		if av.DoctorID == doctorID && !av.DeletedAt.Valid {
			out = append(out, s.withDoctor(av))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SlotStart.Before(out[j].SlotStart)
	})
	return out, nil
}

func (s *Store) DeleteAvailability(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	av, ok := s.availabilities[id]
	if !ok || av.DeletedAt.Valid {
		return avdomain.ErrNotFound
	}
	av.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	s.availabilities[id] = av
	return nil
}

func (s *Store) HasOverlap(_ context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []models.Availability
	for _, av := range s.availabilities {
		if av.DoctorID == doctorID && !av.DeletedAt.Valid {
			existing = append(existing, av)
		}
	}
	return avdomain.AnyOverlap(existing, start, end), nil
}

func (s *Store) MarkBooked(_ context.Context, av *models.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.availabilities[av.ID]
	if !ok || row.DeletedAt.Valid || row.IsBooked || row.Version != av.Version {
		return avdomain.ErrBookingConflict
	}

	row.IsBooked = true
	row.Version++
	row.UpdatedAt = av.UpdatedAt
	s.availabilities[av.ID] = row

	av.IsBooked = true
	av.Version = row.Version
	return nil
}

// ===============================
// Appointment
// ===============================

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.appointments {
		if existing.AvailabilityID == ap.AvailabilityID {
			return apdomain.ErrSlotTaken
		}
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt

	s.appointments[ap.ID] = stripAppointment(*ap)
	return nil
}

func (s *Store) GetAppointmentByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, apdomain.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[ap.ID]; !ok {
		return apdomain.ErrNotFound
	}
	s.appointments[ap.ID] = stripAppointment(*ap)
	return nil
}

func (s *Store) detail(ap models.Appointment) models.Appointment {
	ap.Doctor = s.doctors[ap.DoctorID]
	ap.Client = s.clients[ap.ClientID]
	ap.Availability = s.availabilities[ap.AvailabilityID]
	return ap
}

func (s *Store) GetAppointmentDetail(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, apdomain.ErrNotFound
	}
	ap = s.detail(ap)
	return &ap, nil
}

func (s *Store) ListDetailsByClient(_ context.Context, clientID uuid.UUID) ([]models.Appointment, error) {
	return s.listDetails(func(ap models.Appointment) bool { return ap.ClientID == clientID }), nil
}

func (s *Store) ListDetailsByDoctor(_ context.Context, doctorID uuid.UUID) ([]models.Appointment, error) {
	return s.listDetails(func(ap models.Appointment) bool { return ap.DoctorID == doctorID }), nil
}

func (s *Store) listDetails(match func(models.Appointment) bool) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if match(ap) {
			out = append(out, s.detail(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDateTime.Before(out[j].AppointmentDateTime)
	})
	return out
}

func stripAppointment(ap models.Appointment) models.Appointment {
	ap.Doctor = models.Doctor{}
	ap.Client = models.Client{}
	ap.Availability = models.Availability{}
	if ap.Notes != nil {
		n := *ap.Notes
		ap.Notes = &n
	}
	return ap
}
