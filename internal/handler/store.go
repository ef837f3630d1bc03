package handler

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// Store is the persistence surface the handlers depend on. The production
// implementation is *repository.Repository; tests substitute an in-memory
// fake.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	GetAllUsers() ([]*domain.User, error)
	UpdateUser(user *domain.User) error

	CreateJobPosting(posting *domain.JobPosting) error
	GetJobPostingByID(id int64) (*domain.JobPosting, error)
	GetAllJobPostings() ([]*domain.JobPosting, error)
	GetJobPostingsByEmployer(employerID int64) ([]*domain.JobPosting, error)
	UpdateJobPosting(posting *domain.JobPosting) error
	DeleteJobPosting(id int64) error

	CreateJobApplication(app *domain.JobApplication) error
	GetJobApplicationByID(id int64) (*domain.JobApplication, error)
	GetJobApplicationsByUser(userID int64) ([]*domain.JobApplication, error)
	GetJobApplicationsByPosting(jobPostingID int64) ([]*domain.JobApplication, error)
	UpdateJobApplication(app *domain.JobApplication) error

	CreateInterview(interview *domain.Interview) error
	GetInterviewByApplicationAndStatus(applicationID int64, status domain.InterviewStatus) (*domain.Interview, error)
	GetInterviewsByApplication(applicationID int64) ([]*domain.Interview, error)
	MarkInterviewsSuperseded(applicationID int64, keepID int64) error

	CreateProgramDocument(doc *domain.ProgramDocument) error
	GetProgramDocumentByID(id int64) (*domain.ProgramDocument, error)
	GetLatestProgramDocument(userID int64, programType domain.ProgramType) (*domain.ProgramDocument, error)
	GetProgramDocumentsByUser(userID int64) ([]*domain.ProgramDocument, error)
	DeleteProgramDocument(id int64) error

	CreateAppointment(appt *domain.Appointment) error
	GetAppointmentByID(id int64) (*domain.Appointment, error)
	GetAppointmentsByUser(userID int64) ([]*domain.Appointment, error)
	UpdateAppointmentStatus(id int64, status domain.AppointmentStatus) error

	CreateProviderService(svc *domain.ProviderService) error
	GetProviderServiceByID(id int64) (*domain.ProviderService, error)
	GetAllProviderServices() ([]*domain.ProviderService, error)
	UpdateProviderService(svc *domain.ProviderService) error
	DeleteProviderService(id int64) error
}
