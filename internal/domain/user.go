package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePlayer Role = "Player"
	RoleCoach  Role = "Coach"
)

func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleCoach
}

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FullName     string     `json:"fullName" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"type:varchar(16);not null"`
	CoachID      *uuid.UUID `json:"coachId,omitempty" gorm:"type:uuid;index"` // player's selected coach, nil for coaches
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
