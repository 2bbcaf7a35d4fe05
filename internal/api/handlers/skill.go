package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/api/middleware"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/service"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; the
// remainder spills to disk.
const maxUploadMemory = 32 << 20

// SkillHandler serves every skill domain through one generic set of
// endpoints; the domain URL segment selects the DomainSpec.
type SkillHandler struct {
	analysisService    *service.AnalysisService
	leaderboardService *service.LeaderboardService
}

func NewSkillHandler(analysisService *service.AnalysisService, leaderboardService *service.LeaderboardService) *SkillHandler {
	return &SkillHandler{
		analysisService:    analysisService,
		leaderboardService: leaderboardService,
	}
}

func specFromRequest(r *http.Request) (domain.DomainSpec, bool) {
	return domain.SpecForSlug(chi.URLParam(r, "domain"))
}

func (h *SkillHandler) Upload(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

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

	correctFile, correctHeader, err := r.FormFile(spec.CorrectPart)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Both videos are required.")
		return
	}
	defer correctFile.Close()

	wrongFile, wrongHeader, err := r.FormFile(spec.WrongPart)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Both videos are required.")
		return
	}
	defer wrongFile.Close()

	record, err := h.analysisService.CreateRecord(r.Context(), spec, userID,
		service.UploadedFile{File: correctFile, Header: correctHeader},
		service.UploadedFile{File: wrongFile, Header: wrongHeader},
	)
	if err != nil {
		log.Printf("ERROR [skill.Upload] %s: %v", spec.Domain, err)
		respondError(w, statusForError(err), "File Upload Failed.", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Videos uploaded successfully",
		"data":    record,
	})
}

func (h *SkillHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	recordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid record id.")
		return
	}

	record, err := h.analysisService.Analyze(r.Context(), recordID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAnalyzed) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message":          "Analysis has already been performed for this record.",
				"analyzedVideoUrl": record.AnalyzedVideoURL,
				"score":            record.ScoreData(),
			})
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Record not found.")
			return
		}
		log.Printf("ERROR [skill.Analyze] record %s: %v", recordID, err)
		respondError(w, statusForError(err), "Internal Server Error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Analysis completed successfully",
		"analyzedVideoUrl": record.AnalyzedVideoURL,
		"score":            record.ScoreData(),
	})
}

func (h *SkillHandler) Records(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ownerID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	// Athletes may only read their own history
	if ownerID != userID {
		respondMessage(w, http.StatusForbidden, "Access Denied. You can only view your own records.")
		return
	}

	records, err := h.analysisService.ListByOwner(r.Context(), spec, ownerID)
	if err != nil {
		log.Printf("ERROR [skill.Records] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(records) == 0 {
		respondMessage(w, http.StatusNotFound, "No videos found for this user.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Videos fetched successfully",
		"data":    records,
	})
}

func (h *SkillHandler) Matching(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ownerID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	if ownerID != userID {
		respondMessage(w, http.StatusForbidden, "Access Denied. You can only view your own records.")
		return
	}

	entries, err := h.analysisService.MatchingHistory(r.Context(), spec, ownerID)
	if err != nil {
		log.Printf("ERROR [skill.Matching] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if len(entries) == 0 {
		respondMessage(w, http.StatusNotFound, "No matching percentage data found for this user.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Matching percentages fetched successfully",
		"data":    entries,
	})
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

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

	if err := h.analysisService.Delete(r.Context(), spec, recordID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Record not found or unauthorized to delete.")
			return
		}
		log.Printf("ERROR [skill.Delete] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error.", err)
		return
	}

	respondMessage(w, http.StatusOK, "Record deleted successfully.")
}

type TopPlayersRequest struct {
	Count int `json:"count"`
}

func (h *SkillHandler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TopPlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid count value.")
		return
	}

	entries, err := h.leaderboardService.TopAthletes(r.Context(), userID, spec, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondMessage(w, http.StatusForbidden, "Access Denied. Only coaches can view this data.")
		case errors.Is(err, domain.ErrValidation):
			respondMessage(w, http.StatusBadRequest, "Invalid count value.")
		default:
			log.Printf("ERROR [skill.TopPlayers] %v", err)
			respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Top players fetched successfully",
		"topUsers": entries,
	})
}

func (h *SkillHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	spec, ok := specFromRequest(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Unknown skill domain.")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	suggestions, err := h.analysisService.Suggestions(r.Context(), spec, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "No records found for this user.")
			return
		}
		log.Printf("ERROR [skill.Suggestions] %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Suggestions fetched successfully",
		"data":    suggestions,
	})
}
