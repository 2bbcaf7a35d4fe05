package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/api/middleware"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/service"
)

// injuryImagePart is the multipart field name for the injury photo.
const injuryImagePart = "injury_image"

type InjuryHandler struct {
	injuryService *service.InjuryService
}

func NewInjuryHandler(injuryService *service.InjuryService) *InjuryHandler {
	return &InjuryHandler{injuryService: injuryService}
}

func (h *InjuryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "File Upload Failed.", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(injuryImagePart)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	record, err := h.injuryService.Create(r.Context(), userID, service.UploadedFile{File: file, Header: header})
	if err != nil {
		log.Printf("ERROR [injury.Upload] %v", err)
		respondError(w, statusForError(err), "Injury detection failed.", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Injury image uploaded and analyzed successfully",
		"injuryData": record,
	})
}

func (h *InjuryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.injuryService.List(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [injury.List] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Injury records fetched successfully",
		"records": records,
	})
}

func (h *InjuryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid record id.")
		return
	}

	record, err := h.injuryService.Get(r.Context(), recordID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Injury record not found")
			return
		}
		log.Printf("ERROR [injury.Get] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Injury record fetched successfully",
		"injuryRecord": record,
	})
}

func (h *InjuryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid record id.")
		return
	}

	if err := h.injuryService.Delete(r.Context(), recordID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Injury record not found or not authorized to delete")
			return
		}
		log.Printf("ERROR [injury.Delete] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	respondMessage(w, http.StatusOK, "Injury record deleted successfully")
}
