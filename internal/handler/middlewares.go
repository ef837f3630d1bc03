package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the request's identity from the Authorization header.
// Every failure mode (no header, wrong scheme, bad signature, expiry,
// unparseable subject) degrades to an anonymous request; nothing is rejected
// here. The role gates below decide whether anonymous is good enough.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.tokens.Verify(tokenString, time.Now())
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal := &domain.Principal{
			UserID: userID,
			Roles:  claims.Roles,
		}

		// the principal is request-scoped: it lives in this request's context
		// and nowhere else
		ctx := context.WithValue(r.Context(), PrincipalCtxKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the request's principal, or nil for anonymous.
func principalFrom(r *http.Request) *domain.Principal {
	principal, _ := r.Context().Value(PrincipalCtxKey).(*domain.Principal)
	return principal
}

func (h *Handler) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principalFrom(r) == nil {
			h.unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole is the role gate: anonymous requests get 401, authenticated
// requests whose role set is disjoint from the requirement get 403. An
// endpoint with no gate is public.
func (h *Handler) requireRole(roles ...domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := principalFrom(r)
			if principal == nil {
				h.unauthorized(w, r)
				return
			}
			if !principal.HasAnyRole(roles...) {
				h.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := principalFrom(r)

		myInfo, err := h.repository.GetUserByID(principal.UserID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "user not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) jobPosting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postingIDParam := chi.URLParam(r, "id")
		postingID, err := strconv.ParseInt(postingIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid job posting id"))
			return
		}

		posting, err := h.repository.GetJobPostingByID(postingID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "job posting not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), JobPostingCtx, posting)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireJobPostingOwnership is the second authorization tier: the role gate
// already passed, now the acting principal must own the posting. Staff
// override the ownership check.
func (h *Handler) requireJobPostingOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := principalFrom(r)
		posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)

		if !principal.HasAnyRole(domain.RoleStaff) && posting.EmployerID != principal.UserID {
			h.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) application(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appIDParam := chi.URLParam(r, "id")
		appID, err := strconv.ParseInt(appIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid application id"))
			return
		}

		app, err := h.repository.GetJobApplicationByID(appID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "application not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ApplicationCtx, app)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) document(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docIDParam := chi.URLParam(r, "id")
		docID, err := strconv.ParseInt(docIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid document id"))
			return
		}

		doc, err := h.repository.GetProgramDocumentByID(docID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "document not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), DocumentCtx, doc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireDocumentAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := principalFrom(r)
		doc := r.Context().Value(DocumentCtx).(*domain.ProgramDocument)

		if !principal.HasAnyRole(domain.RoleStaff) && doc.UserID != principal.UserID {
			h.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) providerService(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svcIDParam := chi.URLParam(r, "id")
		svcID, err := strconv.ParseInt(svcIDParam, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid service id"))
			return
		}

		svc, err := h.repository.GetProviderServiceByID(svcID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "service not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ProviderServiceCtx, svc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireProviderServiceOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := principalFrom(r)
		svc := r.Context().Value(ProviderServiceCtx).(*domain.ProviderService)

		if !principal.HasAnyRole(domain.RoleStaff) && svc.ProviderID != principal.UserID {
			h.forbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
