package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wits-dev/workforce-services/backend/internal/config"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func newStoreTestHandler(t *testing.T, store Store) *Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.Expiration = 3600

	h, err := NewHandler(cfg, store, nil, nil, nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()
	return h
}

func seedUser(t *testing.T, store *fakeStore, username string, roles ...domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Roles:    roles,
	}
	require.NoError(t, store.CreateUser(user))
	return user
}

func seedPosting(t *testing.T, store *fakeStore, employerID int64) *domain.JobPosting {
	t.Helper()
	posting := &domain.JobPosting{
		EmployerID:  employerID,
		Title:       "Warehouse Associate",
		CompanyName: "Acme Logistics",
		Location:    "Tampa, FL",
		JobType:     domain.JobTypeFullTime,
		Description: "Second shift pick and pack.",
		Status:      domain.JobStatusActive,
		PostedDate:  time.Now(),
	}
	require.NoError(t, store.CreateJobPosting(posting))
	return posting
}

func bearerFor(t *testing.T, h *Handler, user *domain.User) string {
	t.Helper()
	signed, err := h.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Roles, time.Now())
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, h *Handler, method, target, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func TestApplyDuplicateApplicationConflict(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	token := bearerFor(t, h, seeker)

	payload := map[string]any{"jobPostingId": posting.ID}

	rec := doJSON(t, h, http.MethodPost, "/applications", token, payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/applications", token, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	apps, err := store.GetJobApplicationsByUser(seeker.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, domain.ApplicationReceived, apps[0].Status)
}

func TestApplyMissingPostingNotFound(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	token := bearerFor(t, h, seeker)

	rec := doJSON(t, h, http.MethodPost, "/applications", token, map[string]any{"jobPostingId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusRejectReasonRules(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	employerToken := bearerFor(t, h, employer)

	application := &domain.JobApplication{
		UserID:          seeker.ID,
		JobPostingID:    posting.ID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationUnderReview,
	}
	require.NoError(t, store.CreateJobApplication(application))
	statusURL := "/applications/" + strconv.FormatInt(application.ID, 10) + "/status"

	t.Run("rejecting without a reason fails and leaves the status alone", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, statusURL, employerToken, map[string]any{
			"status":       "REJECTED",
			"rejectReason": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		stored, err := store.GetJobApplicationByID(application.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationUnderReview, stored.Status)
		assert.Empty(t, stored.RejectReason)
	})

	t.Run("rejecting with a reason stores the trimmed reason", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, statusURL, employerToken, map[string]any{
			"status":       "REJECTED",
			"rejectReason": "  not a fit  ",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := store.GetJobApplicationByID(application.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationRejected, stored.Status)
		assert.Equal(t, "not a fit", stored.RejectReason)
	})

	t.Run("moving away from rejected clears the reason", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, statusURL, employerToken, map[string]any{
			"status": "UNDER_REVIEW",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := store.GetJobApplicationByID(application.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationUnderReview, stored.Status)
		assert.Empty(t, stored.RejectReason)
	})
}

func TestUpdateStatusRequiresPostingOwnership(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	owner := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	other := seedUser(t, store, "harbor.foods", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, owner.ID)

	application := &domain.JobApplication{
		UserID:          seeker.ID,
		JobPostingID:    posting.ID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationReceived,
	}
	require.NoError(t, store.CreateJobApplication(application))
	statusURL := "/applications/" + strconv.FormatInt(application.ID, 10) + "/status"

	rec := doJSON(t, h, http.MethodPut, statusURL, bearerFor(t, h, other), map[string]any{
		"status": "UNDER_REVIEW",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored, err := store.GetJobApplicationByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationReceived, stored.Status)
}

func TestScheduleInterviewPostingMismatch(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	otherPosting := seedPosting(t, store, employer.ID)

	application := &domain.JobApplication{
		UserID:          seeker.ID,
		JobPostingID:    posting.ID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationUnderReview,
	}
	require.NoError(t, store.CreateJobApplication(application))

	rec := doJSON(t, h, http.MethodPost,
		"/applications/"+strconv.FormatInt(application.ID, 10)+"/interview",
		bearerFor(t, h, employer),
		map[string]any{
			"jobPostingId":  otherPosting.ID,
			"scheduledAt":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			"location":      "Zoom",
			"interviewType": "VIDEO_CALL",
		})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := store.GetJobApplicationByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationUnderReview, stored.Status)

	interviews, err := store.GetInterviewsByApplication(application.ID)
	require.NoError(t, err)
	assert.Empty(t, interviews)
}

func TestApplicationInterviewFlow(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	employerToken := bearerFor(t, h, employer)

	rec := doJSON(t, h, http.MethodPost, "/applications", bearerFor(t, h, seeker),
		map[string]any{"jobPostingId": posting.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	apps, err := store.GetJobApplicationsByUser(seeker.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	appURL := "/applications/" + strconv.FormatInt(apps[0].ID, 10)

	rec = doJSON(t, h, http.MethodPut, appURL+"/status", employerToken,
		map[string]any{"status": "UNDER_REVIEW"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, appURL+"/interview", employerToken,
		map[string]any{
			"jobPostingId":  posting.ID,
			"scheduledAt":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			"location":      "Zoom",
			"interviewType": "VIDEO_CALL",
		})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.GetJobApplicationByID(apps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationInterviewScheduled, stored.Status)

	interviews, err := store.GetInterviewsByApplication(apps[0].ID)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, domain.InterviewScheduled, interviews[0].Status)
	assert.Equal(t, employer.ID, interviews[0].EmployerID)
	assert.Equal(t, seeker.ID, interviews[0].ApplicantID)
}

func TestScheduleInterviewSupersedesPrevious(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	employerToken := bearerFor(t, h, employer)

	application := &domain.JobApplication{
		UserID:          seeker.ID,
		JobPostingID:    posting.ID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationUnderReview,
	}
	require.NoError(t, store.CreateJobApplication(application))
	interviewURL := "/applications/" + strconv.FormatInt(application.ID, 10) + "/interview"

	schedule := func(location string) {
		rec := doJSON(t, h, http.MethodPost, interviewURL, employerToken, map[string]any{
			"jobPostingId":  posting.ID,
			"scheduledAt":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			"location":      location,
			"interviewType": "VIDEO_CALL",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	schedule("Zoom")
	schedule("On site")

	// both rows remain as history, but only the newest is still live
	interviews, err := store.GetInterviewsByApplication(application.ID)
	require.NoError(t, err)
	require.Len(t, interviews, 2)

	live, err := store.GetInterviewByApplicationAndStatus(application.ID, domain.InterviewScheduled)
	require.NoError(t, err)
	assert.Equal(t, "On site", live.Location)

	scheduledCount := 0
	for _, interview := range interviews {
		if interview.Status == domain.InterviewScheduled {
			scheduledCount++
		}
	}
	assert.Equal(t, 1, scheduledCount)
}

func TestScheduleInterviewInsertFailureKeepsState(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	employer := seedUser(t, store, "acme.hiring", domain.RoleEmployer)
	seeker := seedUser(t, store, "maria.santos", domain.RoleJobSeeker)
	posting := seedPosting(t, store, employer.ID)
	employerToken := bearerFor(t, h, employer)

	application := &domain.JobApplication{
		UserID:          seeker.ID,
		JobPostingID:    posting.ID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationUnderReview,
	}
	require.NoError(t, store.CreateJobApplication(application))

	existing := &domain.Interview{
		ApplicationID: application.ID,
		JobPostingID:  posting.ID,
		EmployerID:    employer.ID,
		ApplicantID:   seeker.ID,
		ScheduledAt:   time.Now().Add(24 * time.Hour),
		Location:      "Zoom",
		InterviewType: domain.InterviewVideoCall,
		Status:        domain.InterviewScheduled,
	}
	require.NoError(t, store.CreateInterview(existing))

	store.failCreateInterview = true

	rec := doJSON(t, h, http.MethodPost,
		"/applications/"+strconv.FormatInt(application.ID, 10)+"/interview",
		employerToken,
		map[string]any{
			"jobPostingId":  posting.ID,
			"scheduledAt":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			"interviewType": "IN_PERSON",
			"location":      "On site",
		})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// the failed insert must leave both the application and the previously
	// scheduled interview untouched
	stored, err := store.GetJobApplicationByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationUnderReview, stored.Status)

	live, err := store.GetInterviewByApplicationAndStatus(application.ID, domain.InterviewScheduled)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, live.ID)
}

func TestGetApplicationStatusesIsPublic(t *testing.T) {
	store := newFakeStore()
	h := newStoreTestHandler(t, store)

	rec := doJSON(t, h, http.MethodGet, "/applications/statuses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                          `json:"success"`
		Data    []domain.JobApplicationStatus `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.ElementsMatch(t, domain.AllApplicationStatuses, resp.Data)
}
