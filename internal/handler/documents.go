package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"github.com/wits-dev/workforce-services/backend/internal/utils"
)

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	if err := r.ParseMultipartForm(h.config.Upload.MaxSize); err != nil {
		h.badRequest(w, r, errors.New("request is not a valid multipart upload"))
		return
	}

	programType, ok := domain.ParseProgramType(r.FormValue("programType"))
	if !ok {
		h.badRequest(w, r, errors.New("unknown programType"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.badRequest(w, r, errors.New("a file field named 'file' is required"))
		return
	}
	defer file.Close()

	if err := utils.ValidateUpload(header, h.config.Upload.MaxSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	relPath, err := h.files.Save(principal.UserID, strings.ToLower(string(programType)), header.Filename, file)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	doc := &domain.ProgramDocument{
		UserID:          principal.UserID,
		ProgramType:     programType,
		Description:     r.FormValue("description"),
		FileID:          relPath,
		FileSizeBytes:   header.Size,
		FileContentType: header.Header.Get("Content-Type"),
		Status:          domain.DocumentSubmitted,
	}

	if err := h.repository.CreateProgramDocument(doc); err != nil {
		// the row is the source of truth; don't leave an unreachable file
		if removeErr := h.files.Delete(relPath); removeErr != nil {
			h.logInternalServerError(r, removeErr)
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "document uploaded", doc)
}

func (h *Handler) GetMyDocuments(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	docs, err := h.repository.GetProgramDocumentsByUser(principal.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "documents retrieved", docs)
}

func (h *Handler) GetLatestDocument(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	programType, ok := domain.ParseProgramType(r.URL.Query().Get("programType"))
	if !ok {
		h.badRequest(w, r, errors.New("unknown programType"))
		return
	}

	doc, err := h.repository.GetLatestProgramDocument(principal.UserID, programType)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "no document uploaded for this program type")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "document retrieved", doc)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(DocumentCtx).(*domain.ProgramDocument)
	h.successResponse(w, r, "document retrieved", doc)
}

func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(DocumentCtx).(*domain.ProgramDocument)

	file, err := h.files.Open(doc.FileID)
	if err != nil {
		h.notFound(w, r, "stored file is no longer available")
		return
	}
	defer file.Close()

	contentType := doc.FileContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(doc.FileID)+`"`)

	http.ServeContent(w, r, path.Base(doc.FileID), doc.CreatedAt, file)
}

// DeleteDocument removes the stored file before the metadata row so a failed
// file removal never strands a row pointing at data we cannot account for.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	doc := r.Context().Value(DocumentCtx).(*domain.ProgramDocument)

	if err := h.files.Delete(doc.FileID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.DeleteProgramDocument(doc.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "document not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "document deleted", nil)
}
