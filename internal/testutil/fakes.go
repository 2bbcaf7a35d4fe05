package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/rp-projects/netball-api/internal/analyzer"
	"github.com/rp-projects/netball-api/internal/domain"
)

// FakeStorage implements storage.ObjectStorage in memory. Uploaded keys
// are recorded so tests can assert on what was stored.
type FakeStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Objects: make(map[string][]byte)}
}

func (f *FakeStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = data
	return "https://storage.test/" + key, nil
}

// Keys returns the stored object keys
func (f *FakeStorage) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.Objects))
	for k := range f.Objects {
		keys = append(keys, k)
	}
	return keys
}

// FakeScorer is a scriptable service.Scorer. Call counts let tests
// assert the external scorer is invoked at most once per record.
type FakeScorer struct {
	mu sync.Mutex

	SkillResult *analyzer.SkillResult
	SkillErr    error
	SkillCalls  int

	InjuryResult *analyzer.InjuryResult
	InjuryErr    error
	InjuryCalls  int
}

func NewFakeScorer() *FakeScorer {
	return &FakeScorer{
		SkillResult: &analyzer.SkillResult{
			AnalyzedVideoURL: "https://storage.test/analyzed/default.mp4",
			Overall:          72.5,
			Metrics:          nil,
		},
		InjuryResult: &analyzer.InjuryResult{
			Class:       "Abrasions",
			Probability: 0.91,
		},
	}
}

func (f *FakeScorer) AnalyzeSkill(ctx context.Context, spec domain.DomainSpec, correctURL, wrongURL string) (*analyzer.SkillResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SkillCalls++
	if f.SkillErr != nil {
		return nil, f.SkillErr
	}
	return f.SkillResult, nil
}

func (f *FakeScorer) DetectInjury(ctx context.Context, imageURL string) (*analyzer.InjuryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.InjuryCalls++
	if f.InjuryErr != nil {
		return nil, f.InjuryErr
	}
	return f.InjuryResult, nil
}

// SkillCallCount returns how many times AnalyzeSkill was invoked
func (f *FakeScorer) SkillCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SkillCalls
}
