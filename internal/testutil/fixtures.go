package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rp-projects/netball-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	fullName string
	email    string
	password string
	role     domain.Role
	coachID  *uuid.UUID
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		fullName: fmt.Sprintf("Test Player %s", suffix),
		email:    fmt.Sprintf("player_%s@test.com", suffix),
		password: "testpassword123",
		role:     domain.RolePlayer,
	}
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsCoach marks the user as a coach
func (b *UserBuilder) AsCoach() *UserBuilder {
	b.role = domain.RoleCoach
	b.coachID = nil
	return b
}

// WithCoach assigns the player to a coach
func (b *UserBuilder) WithCoach(coach *domain.User) *UserBuilder {
	id := coach.ID
	b.coachID = &id
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     b.fullName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CoachID:      b.coachID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"fullName": b.fullName,
		"email":    b.email,
		"password": b.password,
		"role":     string(b.role),
	}
	if b.coachID != nil {
		reqBody["coachId"] = b.coachID.String()
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		FullName: authResp.User.FullName,
		Email:    authResp.User.Email,
		Role:     domain.Role(authResp.User.Role),
		CoachID:  b.coachID,
	}

	return user, authResp.AccessToken
}

// SkillRecordBuilder creates test skill records with a builder pattern
type SkillRecordBuilder struct {
	owner            *domain.User
	skillDomain      domain.SkillDomain
	analyzedVideoURL string
	overallScore     float64
	metrics          map[string]float64
	createdAt        time.Time
}

// NewSkillRecordBuilder creates a builder for a pending ball handling record
func NewSkillRecordBuilder(owner *domain.User) *SkillRecordBuilder {
	return &SkillRecordBuilder{
		owner:       owner,
		skillDomain: domain.DomainBallHandling,
		createdAt:   time.Now(),
	}
}

// WithDomain sets the skill domain
func (b *SkillRecordBuilder) WithDomain(d domain.SkillDomain) *SkillRecordBuilder {
	b.skillDomain = d
	return b
}

// Analyzed marks the record as analyzed with the given overall score
func (b *SkillRecordBuilder) Analyzed(score float64) *SkillRecordBuilder {
	b.analyzedVideoURL = fmt.Sprintf("https://storage.test/analyzed/%s.mp4", uuid.New().String()[:8])
	b.overallScore = score
	return b
}

// WithMetrics sets the sub-metric map stored alongside the overall score
func (b *SkillRecordBuilder) WithMetrics(metrics map[string]float64) *SkillRecordBuilder {
	b.metrics = metrics
	return b
}

// WithCreatedAt sets the creation time, used to exercise tie-breaking
func (b *SkillRecordBuilder) WithCreatedAt(at time.Time) *SkillRecordBuilder {
	b.createdAt = at
	return b
}

// Build creates the skill record in the database
func (b *SkillRecordBuilder) Build(t *testing.T, db *gorm.DB) *domain.SkillRecord {
	t.Helper()

	var metrics datatypes.JSON
	if b.metrics != nil {
		data, err := json.Marshal(b.metrics)
		if err != nil {
			t.Fatalf("failed to marshal metrics: %v", err)
		}
		metrics = datatypes.JSON(data)
	}

	record := &domain.SkillRecord{
		ID:               uuid.New(),
		OwnerID:          b.owner.ID,
		Domain:           b.skillDomain,
		CorrectVideoURL:  fmt.Sprintf("https://storage.test/videos/%s/correct.mp4", b.owner.ID),
		WrongVideoURL:    fmt.Sprintf("https://storage.test/videos/%s/wrong.mp4", b.owner.ID),
		AnalyzedVideoURL: b.analyzedVideoURL,
		OverallScore:     b.overallScore,
		Metrics:          metrics,
		UploadedAt:       b.createdAt,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.createdAt,
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create skill record: %v", err)
	}

	return record
}

// InjuryRecordBuilder creates test injury records
type InjuryRecordBuilder struct {
	owner       *domain.User
	injuryClass string
	probability float64
}

func NewInjuryRecordBuilder(owner *domain.User) *InjuryRecordBuilder {
	return &InjuryRecordBuilder{
		owner:       owner,
		injuryClass: "Abrasions",
		probability: 0.9,
	}
}

// WithClass sets the detected injury class
func (b *InjuryRecordBuilder) WithClass(class string, probability float64) *InjuryRecordBuilder {
	b.injuryClass = class
	b.probability = probability
	return b
}

// Build creates the injury record in the database
func (b *InjuryRecordBuilder) Build(t *testing.T, db *gorm.DB) *domain.InjuryRecord {
	t.Helper()

	record := &domain.InjuryRecord{
		ID:          uuid.New(),
		OwnerID:     b.owner.ID,
		ImageURL:    fmt.Sprintf("https://storage.test/injury_images/%s/knee.jpg", b.owner.ID),
		InjuryClass: b.injuryClass,
		Probability: b.probability,
		UploadedAt:  time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create injury record: %v", err)
	}

	return record
}

// CreateAuthenticatedRequest creates an HTTP request with a Bearer token
func CreateAuthenticatedRequest(t *testing.T, method, url, token string, body interface{}) *http.Request {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req
}

// FilePart describes one multipart file part for upload helpers.
type FilePart struct {
	Filename    string
	ContentType string
}

// MultipartUpload builds a multipart body with video parts under the
// given field names.
func MultipartUpload(t *testing.T, parts map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	typed := make(map[string]FilePart, len(parts))
	for field, filename := range parts {
		typed[field] = FilePart{Filename: filename, ContentType: "video/mp4"}
	}
	return MultipartUploadTyped(t, typed)
}

// MultipartUploadTyped builds a multipart body with explicit content
// types per part.
func MultipartUploadTyped(t *testing.T, parts map[string]FilePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, fp := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fp.Filename))
		header.Set("Content-Type", fp.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake media content")); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}
