package domain

// NoSuggestedVideo is returned for records that were never analyzed.
const NoSuggestedVideo = "No suggested video"

// Suggestion pairs a record's overall score with a canned remediation
// video. A nil Score means the record has no value yet.
type Suggestion struct {
	Score          *float64 `json:"score"`
	SuggestedVideo string   `json:"suggestedVideo"`
}

// Suggest maps an overall score to the domain's remediation asset:
// above 80 advanced, 60 to 80 intermediate, below 60 beginner. A nil
// score yields the no-suggestion sentinel.
func Suggest(spec DomainSpec, score *float64) Suggestion {
	if score == nil {
		return Suggestion{SuggestedVideo: NoSuggestedVideo}
	}

	var video string
	switch {
	case *score > 80:
		video = spec.Videos.Advanced
	case *score >= 60:
		video = spec.Videos.Intermediate
	default:
		video = spec.Videos.Beginner
	}

	return Suggestion{Score: score, SuggestedVideo: video}
}
