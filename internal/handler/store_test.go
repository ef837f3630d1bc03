package handler

import (
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// fakeStore is an in-memory Store for handler tests. Lookups return copies so
// a handler mutating a loaded entity without persisting it never leaks into
// the stored state, mirroring how rows behave.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64

	users        map[int64]*domain.User
	postings     map[int64]*domain.JobPosting
	applications map[int64]*domain.JobApplication
	interviews   map[int64]*domain.Interview
	documents    map[int64]*domain.ProgramDocument
	appointments map[int64]*domain.Appointment
	services     map[int64]*domain.ProviderService

	failCreateInterview bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[int64]*domain.User),
		postings:     make(map[int64]*domain.JobPosting),
		applications: make(map[int64]*domain.JobApplication),
		interviews:   make(map[int64]*domain.Interview),
		documents:    make(map[int64]*domain.ProgramDocument),
		appointments: make(map[int64]*domain.Appointment),
		services:     make(map[int64]*domain.ProviderService),
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) CreateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	user.ID = s.id()
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.Version = 1
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) GetUserByUsername(username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) GetAllUsers() ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *fakeStore) UpdateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok || existing.Version != user.Version {
		return sql.ErrNoRows
	}
	user.Version++
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeStore) CreateJobPosting(posting *domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	posting.ID = s.id()
	posting.Version = 1
	stored := *posting
	s.postings[posting.ID] = &stored
	return nil
}

func (s *fakeStore) GetJobPostingByID(id int64) (*domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posting, ok := s.postings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *posting
	return &copied, nil
}

func (s *fakeStore) GetAllJobPostings() ([]*domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	postings := make([]*domain.JobPosting, 0, len(s.postings))
	for _, posting := range s.postings {
		copied := *posting
		postings = append(postings, &copied)
	}
	sort.Slice(postings, func(i, j int) bool { return postings[i].ID < postings[j].ID })
	return postings, nil
}

func (s *fakeStore) GetJobPostingsByEmployer(employerID int64) ([]*domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	postings := make([]*domain.JobPosting, 0)
	for _, posting := range s.postings {
		if posting.EmployerID == employerID {
			copied := *posting
			postings = append(postings, &copied)
		}
	}
	sort.Slice(postings, func(i, j int) bool { return postings[i].ID < postings[j].ID })
	return postings, nil
}

func (s *fakeStore) UpdateJobPosting(posting *domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.postings[posting.ID]
	if !ok || existing.Version != posting.Version {
		return sql.ErrNoRows
	}
	posting.Version++
	stored := *posting
	s.postings[posting.ID] = &stored
	return nil
}

func (s *fakeStore) DeleteJobPosting(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.postings[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.postings, id)
	return nil
}

func (s *fakeStore) CreateJobApplication(app *domain.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.applications {
		if existing.UserID == app.UserID && existing.JobPostingID == app.JobPostingID {
			return uniqueViolation("job_applications_user_id_job_posting_id_key")
		}
	}
	app.ID = s.id()
	app.Version = 1
	stored := *app
	s.applications[app.ID] = &stored
	return nil
}

func (s *fakeStore) GetJobApplicationByID(id int64) (*domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (s *fakeStore) GetJobApplicationsByUser(userID int64) ([]*domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := make([]*domain.JobApplication, 0)
	for _, app := range s.applications {
		if app.UserID == userID {
			copied := *app
			apps = append(apps, &copied)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (s *fakeStore) GetJobApplicationsByPosting(jobPostingID int64) ([]*domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := make([]*domain.JobApplication, 0)
	for _, app := range s.applications {
		if app.JobPostingID == jobPostingID {
			copied := *app
			apps = append(apps, &copied)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (s *fakeStore) UpdateJobApplication(app *domain.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.applications[app.ID]
	if !ok || existing.Version != app.Version {
		return sql.ErrNoRows
	}
	app.Version++
	stored := *app
	s.applications[app.ID] = &stored
	return nil
}

func (s *fakeStore) CreateInterview(interview *domain.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateInterview {
		return errors.New("interview insert failed")
	}
	interview.ID = s.id()
	interview.CreatedAt = time.Now()
	stored := *interview
	s.interviews[interview.ID] = &stored
	return nil
}

func (s *fakeStore) GetInterviewByApplicationAndStatus(applicationID int64, status domain.InterviewStatus) (*domain.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.Interview
	for _, interview := range s.interviews {
		if interview.ApplicationID != applicationID || interview.Status != status {
			continue
		}
		if latest == nil || interview.ID > latest.ID {
			latest = interview
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}

func (s *fakeStore) GetInterviewsByApplication(applicationID int64) ([]*domain.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	interviews := make([]*domain.Interview, 0)
	for _, interview := range s.interviews {
		if interview.ApplicationID == applicationID {
			copied := *interview
			interviews = append(interviews, &copied)
		}
	}
	sort.Slice(interviews, func(i, j int) bool { return interviews[i].ID > interviews[j].ID })
	return interviews, nil
}

func (s *fakeStore) MarkInterviewsSuperseded(applicationID int64, keepID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, interview := range s.interviews {
		if interview.ApplicationID == applicationID && interview.Status == domain.InterviewScheduled && interview.ID != keepID {
			interview.Status = domain.InterviewCancelled
		}
	}
	return nil
}

func (s *fakeStore) CreateProgramDocument(doc *domain.ProgramDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.ID = s.id()
	doc.CreatedAt = time.Now()
	stored := *doc
	s.documents[doc.ID] = &stored
	return nil
}

func (s *fakeStore) GetProgramDocumentByID(id int64) (*domain.ProgramDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (s *fakeStore) GetLatestProgramDocument(userID int64, programType domain.ProgramType) (*domain.ProgramDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.ProgramDocument
	for _, doc := range s.documents {
		if doc.UserID != userID || doc.ProgramType != programType {
			continue
		}
		if latest == nil || doc.ID > latest.ID {
			latest = doc
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}

func (s *fakeStore) GetProgramDocumentsByUser(userID int64) ([]*domain.ProgramDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*domain.ProgramDocument, 0)
	for _, doc := range s.documents {
		if doc.UserID == userID {
			copied := *doc
			docs = append(docs, &copied)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	return docs, nil
}

func (s *fakeStore) DeleteProgramDocument(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.documents, id)
	return nil
}

func (s *fakeStore) CreateAppointment(appt *domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.appointments {
		if existing.UserID == appt.UserID && existing.SlotStart.Equal(appt.SlotStart) {
			return uniqueViolation("appointments_user_id_slot_start_key")
		}
	}
	appt.ID = s.id()
	appt.CreatedAt = time.Now()
	stored := *appt
	s.appointments[appt.ID] = &stored
	return nil
}

func (s *fakeStore) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *appt
	return &copied, nil
}

func (s *fakeStore) GetAppointmentsByUser(userID int64) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appts := make([]*domain.Appointment, 0)
	for _, appt := range s.appointments {
		if appt.UserID == userID {
			copied := *appt
			appts = append(appts, &copied)
		}
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ID < appts[j].ID })
	return appts, nil
}

func (s *fakeStore) UpdateAppointmentStatus(id int64, status domain.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		return sql.ErrNoRows
	}
	appt.Status = status
	return nil
}

func (s *fakeStore) CreateProviderService(svc *domain.ProviderService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = s.id()
	svc.CreatedAt = time.Now()
	svc.Version = 1
	stored := *svc
	s.services[svc.ID] = &stored
	return nil
}

func (s *fakeStore) GetProviderServiceByID(id int64) (*domain.ProviderService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (s *fakeStore) GetAllProviderServices() ([]*domain.ProviderService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	services := make([]*domain.ProviderService, 0, len(s.services))
	for _, svc := range s.services {
		copied := *svc
		services = append(services, &copied)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services, nil
}

func (s *fakeStore) UpdateProviderService(svc *domain.ProviderService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.services[svc.ID]
	if !ok || existing.Version != svc.Version {
		return sql.ErrNoRows
	}
	svc.Version++
	stored := *svc
	s.services[svc.ID] = &stored
	return nil
}

func (s *fakeStore) DeleteProviderService(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.services, id)
	return nil
}
