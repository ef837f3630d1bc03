package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/wits-dev/workforce-services/backend/internal/config"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"github.com/wits-dev/workforce-services/backend/internal/matching"
	"github.com/wits-dev/workforce-services/backend/internal/storage"
	"github.com/wits-dev/workforce-services/backend/internal/token"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  Store
	translator  ut.Translator
	tokens      *token.Service
	files       *storage.FileStore
	matcher     *matching.Client
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Store, mailCh *amqp.Channel, rdb *redis.Client, files *storage.FileStore, matcher *matching.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		tokens:      token.NewService(cfg.JWT.Secret, cfg.JWT.Expiration),
		files:       files,
		matcher:     matcher,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	// every request gets an identity resolved (or stays anonymous); rejection
	// only ever happens at the role gates below
	h.Mux.Use(h.authenticate)

	h.Mux.Get("/health", h.Health)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/my-info", func(r chi.Router) {
		r.Use(h.requireAuthenticated)
		r.Use(h.myInfo)
		r.Get("/", h.GetMyInfo)
		r.Patch("/password", h.UpdateMyPassword)
		r.Patch("/profile", h.UpdateMyProfile)
	})

	h.Mux.Route("/users", func(r chi.Router) {
		r.Use(h.requireRole(domain.RoleStaff))
		r.Get("/", h.GetAllUsers)
		r.Get("/{id}", h.GetUser)
	})

	h.Mux.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.GetAllJobPostings)
		r.With(h.requireRole(domain.RoleEmployer)).Post("/", h.CreateJobPosting)
		r.With(h.requireRole(domain.RoleJobSeeker)).Get("/matches", h.MatchPostingsForMyResume)
		r.With(h.requireRole(domain.RoleEmployer)).Get("/my", h.GetMyJobPostings)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.jobPosting)
			r.Get("/", h.GetJobPosting)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleStaff), h.requireJobPostingOwnership).Patch("/", h.UpdateJobPosting)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleStaff), h.requireJobPostingOwnership).Delete("/", h.DeleteJobPosting)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleStaff), h.requireJobPostingOwnership).Get("/applications", h.GetApplicationsForPosting)
			r.With(h.requireRole(domain.RoleEmployer), h.requireJobPostingOwnership).Get("/matches", h.MatchResumesForPosting)
		})
	})

	h.Mux.Route("/applications", func(r chi.Router) {
		r.Get("/statuses", h.GetApplicationStatuses)
		r.With(h.requireRole(domain.RoleJobSeeker)).Post("/", h.Apply)
		r.With(h.requireRole(domain.RoleJobSeeker)).Get("/my", h.GetMyApplications)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.application)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleStaff)).Put("/status", h.UpdateApplicationStatus)
			r.With(h.requireRole(domain.RoleJobSeeker)).Post("/withdraw", h.WithdrawApplication)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleStaff)).Post("/interview", h.ScheduleInterview)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleJobSeeker, domain.RoleStaff)).Get("/interview", h.GetInterview)
			r.With(h.requireRole(domain.RoleEmployer, domain.RoleJobSeeker, domain.RoleStaff)).Get("/interviews", h.GetInterviewHistory)
		})
	})

	h.Mux.Route("/documents", func(r chi.Router) {
		r.Use(h.requireAuthenticated)
		r.Post("/", h.UploadDocument)
		r.Get("/", h.GetMyDocuments)
		r.Get("/latest", h.GetLatestDocument)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.document)
			r.Use(h.requireDocumentAccess)
			r.Get("/", h.GetDocument)
			r.Get("/download", h.DownloadDocument)
			r.Delete("/", h.DeleteDocument)
		})
	})

	h.Mux.Route("/appointments", func(r chi.Router) {
		r.Use(h.requireAuthenticated)
		r.Post("/", h.CreateAppointment)
		r.Get("/my", h.GetMyAppointments)
		r.Post("/{id}/cancel", h.CancelAppointment)
	})

	h.Mux.Route("/provider-services", func(r chi.Router) {
		r.Get("/", h.GetAllProviderServices)
		r.With(h.requireRole(domain.RoleProvider)).Post("/", h.CreateProviderService)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.providerService)
			r.Get("/", h.GetProviderService)
			r.With(h.requireRole(domain.RoleProvider, domain.RoleStaff), h.requireProviderServiceOwnership).Patch("/", h.UpdateProviderService)
			r.With(h.requireRole(domain.RoleProvider, domain.RoleStaff), h.requireProviderServiceOwnership).Delete("/", h.DeleteProviderService)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}
