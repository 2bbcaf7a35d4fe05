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

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	CoachID  string `json:"coachId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message      string       `json:"message"`
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondMessage(w, http.StatusBadRequest, "Full name, email, password and role are required.")
		return
	}

	input := service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
	if req.CoachID != "" {
		coachID, err := uuid.Parse(req.CoachID)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid coach id.")
			return
		}
		input.CoachID = &coachID
	}

	result, err := h.authService.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			respondMessage(w, http.StatusConflict, "Email is already registered.")
		case errors.Is(err, domain.ErrValidation):
			respondMessage(w, http.StatusBadRequest, "Role must be Player or Coach.")
		default:
			log.Printf("ERROR [auth.Register] %v", err)
			respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message:      "User registered successfully",
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		log.Printf("ERROR [auth.Login] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message:      "Login successful",
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User details fetched successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		log.Printf("ERROR [auth.Logout] %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondMessage(w, http.StatusOK, "Logged out successfully")
}
