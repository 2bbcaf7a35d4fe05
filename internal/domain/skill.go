package domain

// SkillDomain identifies one scoring pipeline. Each domain has its own
// upstream endpoint, multipart field names and score shape.
type SkillDomain string

const (
	DomainBallHandling SkillDomain = "ball_handling"
	DomainAttack       SkillDomain = "attack_analysis"
	DomainDefence      SkillDomain = "defence_analysis"
)

// SuggestionVideos holds the canned remediation assets per skill level.
type SuggestionVideos struct {
	Beginner     string
	Intermediate string
	Advanced     string
}

// DomainSpec describes how one skill domain is wired: URL slug, multipart
// part names, the upstream scorer endpoint and envelope key, and the
// sub-metric keys of its score shape. MetricKeys nil means the scorer
// returns a single scalar similarity. A DomainSpec is selected by domain
// or URL slug up front, never inferred from a scorer response.
type DomainSpec struct {
	Domain       SkillDomain
	Slug         string
	UpstreamPath string
	ResultKey    string
	CorrectPart  string
	WrongPart    string
	MetricKeys   []string
	Videos       SuggestionVideos
}

var domainSpecs = []DomainSpec{
	{
		Domain:       DomainBallHandling,
		Slug:         "ball-handling",
		UpstreamPath: "ball_handling",
		ResultKey:    "ball_handling_result",
		CorrectPart:  "ball_handling_correct",
		WrongPart:    "ball_handling_wrong",
		Videos: SuggestionVideos{
			Beginner:     "https://s3.com/beginner_ball_video.mp4",
			Intermediate: "https://s3.com/intermediate_ball_video.mp4",
			Advanced:     "https://s3.com/high_skill_ball_video.mp4",
		},
	},
	{
		Domain:       DomainAttack,
		Slug:         "attack",
		UpstreamPath: "attack_analysis",
		ResultKey:    "attack_analysis_result",
		CorrectPart:  "attack_analysis_correct",
		WrongPart:    "attack_analysis_wrong",
		MetricKeys:   []string{"shoulder", "left_elbow", "right_elbow", "overall"},
		Videos: SuggestionVideos{
			Beginner:     "https://s3.com/beginner_attack_video.mp4",
			Intermediate: "https://s3.com/intermediate_attack_video.mp4",
			Advanced:     "https://s3.com/high_skill_attack_video.mp4",
		},
	},
	{
		Domain:       DomainDefence,
		Slug:         "defence",
		UpstreamPath: "defence_analysis",
		ResultKey:    "defence_analysis_result",
		CorrectPart:  "defence_analysis_correct",
		WrongPart:    "defence_analysis_wrong",
		MetricKeys:   []string{"left_knee", "right_knee", "hip_stance", "stance_width", "overall"},
		Videos: SuggestionVideos{
			Beginner:     "https://s3.com/beginner_defence_video.mp4",
			Intermediate: "https://s3.com/intermediate_defence_video.mp4",
			Advanced:     "https://s3.com/high_skill_defence_video.mp4",
		},
	},
}

// Scalar reports whether the domain's score is a single similarity value.
func (s DomainSpec) Scalar() bool {
	return len(s.MetricKeys) == 0
}

func AllDomainSpecs() []DomainSpec {
	out := make([]DomainSpec, len(domainSpecs))
	copy(out, domainSpecs)
	return out
}

func SpecFor(d SkillDomain) (DomainSpec, bool) {
	for _, s := range domainSpecs {
		if s.Domain == d {
			return s, true
		}
	}
	return DomainSpec{}, false
}

func SpecForSlug(slug string) (DomainSpec, bool) {
	for _, s := range domainSpecs {
		if s.Slug == slug {
			return s, true
		}
	}
	return DomainSpec{}, false
}
