package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SkillRecord is one submitted correct/self video pair. A record is
// Pending until analysis runs; AnalyzedVideoURL is write-once and its
// presence marks the record as Analyzed.
type SkillRecord struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID          uuid.UUID      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Domain           SkillDomain    `json:"domain" gorm:"type:varchar(32);not null;index"`
	CorrectVideoURL  string         `json:"correctVideoUrl" gorm:"not null"`
	WrongVideoURL    string         `json:"wrongVideoUrl" gorm:"not null"`
	AnalyzedVideoURL string         `json:"analyzedVideoUrl" gorm:"not null;default:''"`
	OverallScore     float64        `json:"overallScore" gorm:"not null;default:0"`
	Metrics          datatypes.JSON `json:"metrics,omitempty" gorm:"type:jsonb"`
	UploadedAt       time.Time      `json:"uploadedAt"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID"`
}

func (r *SkillRecord) Analyzed() bool {
	return r.AnalyzedVideoURL != ""
}

// Score returns the overall score, or nil while the record is Pending.
func (r *SkillRecord) Score() *float64 {
	if !r.Analyzed() {
		return nil
	}
	v := r.OverallScore
	return &v
}

// ScoreData returns the named score payload used by leaderboards and the
// matching history: the stored sub-metric map for mapping domains, or a
// single "overall" entry for scalar domains. Nil while Pending.
func (r *SkillRecord) ScoreData() map[string]float64 {
	if !r.Analyzed() {
		return nil
	}
	if len(r.Metrics) > 0 {
		var m map[string]float64
		if err := json.Unmarshal(r.Metrics, &m); err == nil {
			return m
		}
	}
	return map[string]float64{"overall": r.OverallScore}
}
