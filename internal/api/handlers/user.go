package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/api/middleware"
	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Coaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := h.userService.GetCoaches(r.Context())
	if err != nil {
		log.Printf("ERROR [user.Coaches] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Coaches fetched successfully",
		"coaches": coaches,
	})
}

func (h *UserHandler) Players(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	players, err := h.userService.PlayersOf(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondMessage(w, http.StatusForbidden, "Access Denied. Only coaches can view this data.")
			return
		}
		log.Printf("ERROR [user.Players] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Players fetched successfully",
		"players": players,
	})
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	CoachID  string `json:"coachId,omitempty"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	input := service.UpdateProfileInput{FullName: req.FullName}
	if req.CoachID != "" {
		coachID, err := uuid.Parse(req.CoachID)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid coach id.")
			return
		}
		input.CoachID = &coachID
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("ERROR [user.UpdateProfile] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.userService.DeleteProfile(r.Context(), userID); err != nil {
		log.Printf("ERROR [user.DeleteProfile] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(w, http.StatusOK, "Profile deleted successfully")
}
