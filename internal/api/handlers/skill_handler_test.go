package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rp-projects/netball-api/internal/domain"
	"github.com/rp-projects/netball-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadSkillVideos(t *testing.T, ts *testutil.TestServer, token, slug string) map[string]interface{} {
	t.Helper()

	spec, ok := domain.SpecForSlug(slug)
	require.True(t, ok)

	body, contentType := testutil.MultipartUpload(t, map[string]string{
		spec.CorrectPart: "correct.mp4",
		spec.WrongPart:   "wrong.mp4",
	})

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/skills/"+slug+"/upload"), body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result.Data
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := testutil.CreateAuthenticatedRequest(t, method, url, token, body)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestSkillEndpoints_UploadAndAnalyze(t *testing.T) {
	scorer := testutil.NewFakeScorer()
	ts := testutil.NewTestServer(t, scorer)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	data := uploadSkillVideos(t, ts, token, "ball-handling")
	recordID := data["id"].(string)
	assert.Equal(t, "", data["analyzedVideoUrl"])
	assert.Contains(t, data["correctVideoUrl"], "https://storage.test/videos/")

	// First analyze call scores the record
	resp, body := doJSON(t, http.MethodPost, ts.APIURL("/skills/ball-handling/analyze/"+recordID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Analysis completed successfully", body["message"])
	assert.NotEmpty(t, body["analyzedVideoUrl"])
	score := body["score"].(map[string]interface{})
	assert.Equal(t, 72.5, score["overall"])

	// Second call is rejected but reports the stored result, without
	// another scorer round trip
	resp, body = doJSON(t, http.MethodPost, ts.APIURL("/skills/ball-handling/analyze/"+recordID), token, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Analysis has already been performed for this record.", body["message"])
	assert.NotEmpty(t, body["analyzedVideoUrl"])
	assert.Equal(t, 1, scorer.SkillCallCount())
}

func TestSkillEndpoints_UploadValidation(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeScorer())
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("missing part", func(t *testing.T) {
		spec, _ := domain.SpecForSlug("ball-handling")
		body, contentType := testutil.MultipartUpload(t, map[string]string{
			spec.CorrectPart: "correct.mp4",
		})

		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/skills/ball-handling/upload"), body)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", contentType)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown domain", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.APIURL("/skills/dribbling/suggestions"), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp, err := http.Post(ts.APIURL("/skills/ball-handling/upload"), "multipart/form-data", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSkillEndpoints_RecordsAndDelete(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeScorer())
	player, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("empty history", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.APIURL("/skills/attack/records/"+player.ID.String()), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No videos found for this user.", body["message"])
	})

	data := uploadSkillVideos(t, ts, token, "attack")
	recordID := data["id"].(string)

	t.Run("records list", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.APIURL("/skills/attack/records/"+player.ID.String()), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		records := body["data"].([]interface{})
		assert.Len(t, records, 1)
	})

	t.Run("records of another athlete are off limits", func(t *testing.T) {
		_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp, body := doJSON(t, http.MethodGet, ts.APIURL("/skills/attack/records/"+player.ID.String()), otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Access Denied. You can only view your own records.", body["message"])

		resp, _ = doJSON(t, http.MethodGet, ts.APIURL("/skills/attack/matching/"+player.ID.String()), otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("delete by owner", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, ts.APIURL("/skills/attack/records/"+recordID), token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, http.MethodDelete, ts.APIURL("/skills/attack/records/"+recordID), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Record not found or unauthorized to delete.", body["message"])
	})
}

func TestSkillEndpoints_TopPlayers(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeScorer())

	coach, coachToken := testutil.NewUserBuilder().AsCoach().BuildAndAuthenticate(t, ts)
	_, playerToken := testutil.NewUserBuilder().WithCoach(coach).BuildAndAuthenticate(t, ts)

	t.Run("player is rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.APIURL("/skills/ball-handling/top-players"), playerToken,
			map[string]int{"count": 5})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Access Denied. Only coaches can view this data.", body["message"])
	})

	t.Run("invalid count", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.APIURL("/skills/ball-handling/top-players"), coachToken,
			map[string]int{"count": 0})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid count value.", body["message"])
	})

	t.Run("coach gets the ranking", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, ts.APIURL("/skills/ball-handling/top-players"), coachToken,
			map[string]int{"count": 5})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Top players fetched successfully", body["message"])
		_, ok := body["topUsers"]
		assert.True(t, ok)
	})
}

func TestSkillEndpoints_Suggestions(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.NewFakeScorer())
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("no records", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, ts.APIURL("/skills/defence/suggestions"), token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No records found for this user.", body["message"])
	})

	t.Run("pending record maps to the sentinel", func(t *testing.T) {
		uploadSkillVideos(t, ts, token, "defence")

		resp, body := doJSON(t, http.MethodGet, ts.APIURL("/skills/defence/suggestions"), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		suggestions := body["data"].([]interface{})
		require.Len(t, suggestions, 1)
		first := suggestions[0].(map[string]interface{})
		assert.Equal(t, domain.NoSuggestedVideo, first["suggestedVideo"])
		assert.Nil(t, first["score"])
	})
}
