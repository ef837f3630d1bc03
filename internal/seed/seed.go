package seed

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"github.com/wits-dev/workforce-services/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type sampleUser struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Roles     []domain.Role
	Skills    []string
	Veteran   bool
}

var sampleUsers = []sampleUser{
	{
		Username: "maria.santos", FirstName: "Maria", LastName: "Santos",
		Email: "maria.santos@example.com",
		Roles: []domain.Role{domain.RoleJobSeeker},
		Skills: []string{"customer service", "forklift operation", "inventory management"},
	},
	{
		Username: "james.walker", FirstName: "James", LastName: "Walker",
		Email: "james.walker@example.com",
		Roles: []domain.Role{domain.RoleJobSeeker},
		Skills: []string{"welding", "blueprint reading"}, Veteran: true,
	},
	{
		Username: "acme.hiring", FirstName: "Dana", LastName: "Reyes",
		Email: "hiring@acme-logistics.example.com",
		Roles: []domain.Role{domain.RoleEmployer},
	},
	{
		Username: "harbor.foods", FirstName: "Lee", LastName: "Chen",
		Email: "jobs@harbor-foods.example.com",
		Roles: []domain.Role{domain.RoleEmployer},
	},
	{
		Username: "case.worker", FirstName: "Angela", LastName: "Brooks",
		Email: "angela.brooks@workforce.example.gov",
		Roles: []domain.Role{domain.RoleStaff},
	},
	{
		Username: "bright.path", FirstName: "Sam", LastName: "Okafor",
		Email: "contact@brightpath.example.org",
		Roles: []domain.Role{domain.RoleProvider},
	},
}

// SeedSampleData inserts a small, deterministic data set for local
// development. Duplicate rows from a previous run are skipped, not treated
// as failures.
func SeedSampleData(repo *repository.Repository, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("unable to hash the seed password", "error", err)
		return
	}

	users := map[string]*domain.User{}
	for _, su := range sampleUsers {
		user := &domain.User{
			Username:     su.Username,
			PasswordHash: string(passwordHash),
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Email:        su.Email,
			Roles:        su.Roles,
			Skills:       su.Skills,
			Veteran:      su.Veteran,
		}
		if err := repo.CreateUser(user); err != nil {
			if isDuplicate(err) {
				existing, lookupErr := repo.GetUserByUsername(su.Username)
				if lookupErr != nil {
					slog.Error("unable to load existing seed user", "username", su.Username, "error", lookupErr)
					return
				}
				users[su.Username] = existing
				continue
			}
			slog.Error("unable to insert seed user", "username", su.Username, "error", err)
			return
		}
		users[su.Username] = user
	}
	slog.Info("seed users ready", "count", len(users))

	postings := []*domain.JobPosting{
		{
			EmployerID:  users["acme.hiring"].ID,
			Title:       "Warehouse Associate",
			CompanyName: "Acme Logistics",
			Location:    "Tampa, FL",
			JobType:     domain.JobTypeFullTime,
			Description: "Pick, pack and stage outbound freight on second shift.",
			MinSalary:   36000, MaxSalary: 42000,
			RequiredSkills: []string{"forklift operation", "inventory management"},
			Status:         domain.JobStatusActive,
			PostedDate:     time.Now().AddDate(0, 0, -14),
		},
		{
			EmployerID:  users["acme.hiring"].ID,
			Title:       "Fleet Welder",
			CompanyName: "Acme Logistics",
			Location:    "Tampa, FL",
			JobType:     domain.JobTypeContract,
			Description: "Structural repair work on trailer frames, MIG and stick.",
			MinSalary:   52000, MaxSalary: 61000,
			RequiredSkills: []string{"welding", "blueprint reading"},
			Status:         domain.JobStatusActive,
			PostedDate:     time.Now().AddDate(0, 0, -7),
		},
		{
			EmployerID:  users["harbor.foods"].ID,
			Title:       "Line Cook",
			CompanyName: "Harbor Foods",
			Location:    "St. Petersburg, FL",
			JobType:     domain.JobTypePartTime,
			Description: "Prep and line work, weekend availability required.",
			MinSalary:   28000, MaxSalary: 33000,
			RequiredSkills: []string{"food safety"},
			Status:         domain.JobStatusActive,
			PostedDate:     time.Now().AddDate(0, 0, -3),
		},
	}
	for _, posting := range postings {
		if err := repo.CreateJobPosting(posting); err != nil {
			slog.Error("unable to insert seed job posting", "title", posting.Title, "error", err)
			return
		}
	}
	slog.Info("seed job postings ready", "count", len(postings))

	applications := []*domain.JobApplication{
		{
			UserID:          users["maria.santos"].ID,
			JobPostingID:    postings[0].ID,
			ApplicationDate: time.Now().AddDate(0, 0, -10),
			Status:          domain.ApplicationUnderReview,
		},
		{
			UserID:          users["james.walker"].ID,
			JobPostingID:    postings[1].ID,
			ApplicationDate: time.Now().AddDate(0, 0, -5),
			Status:          domain.ApplicationReceived,
		},
	}
	for _, application := range applications {
		if err := repo.CreateJobApplication(application); err != nil {
			if isDuplicate(err) {
				continue
			}
			slog.Error("unable to insert seed application", "error", err)
			return
		}
	}
	slog.Info("seed applications ready", "count", len(applications))

	services := []*domain.ProviderService{
		{
			ProviderID:  users["bright.path"].ID,
			Name:        "Resume Writing Workshop",
			Category:    "TRAINING",
			Description: "Weekly two-hour workshop covering resume structure and tailoring.",
			Location:    "Bright Path Center, Room 2B",
			Status:      domain.ProviderServiceActive,
		},
		{
			ProviderID:  users["bright.path"].ID,
			Name:        "OSHA-10 Certification Course",
			Category:    "CERTIFICATION",
			Description: "Two-day general industry safety certification.",
			Location:    "Bright Path Center, Lab 1",
			Status:      domain.ProviderServiceActive,
		},
	}
	for _, service := range services {
		if err := repo.CreateProviderService(service); err != nil {
			slog.Error("unable to insert seed provider service", "name", service.Name, "error", err)
			return
		}
	}
	slog.Info("seed provider services ready", "count", len(services))

	appointment := &domain.Appointment{
		UserID:          users["maria.santos"].ID,
		AppointmentType: domain.AppointmentCareerCounseling,
		SlotStart:       time.Now().AddDate(0, 0, 7).Truncate(time.Hour),
		Location:        "Downtown Career Center, Desk 4",
		Status:          domain.AppointmentScheduled,
	}
	if err := repo.CreateAppointment(appointment); err != nil && !isDuplicate(err) {
		slog.Error("unable to insert seed appointment", "error", err)
		return
	}

	slog.Info("sample data seeded")
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
