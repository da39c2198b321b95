package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/Charan-Crafts/hackathon-platform/api/controllers/testing"
	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSubmissionTest(t *testing.T) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()
	transport.ConfigureAuth("test-secret", time.Hour)

	db := localstackClient(t)
	hackathonStorage := &storage.DynamoHackathonStorage{
		Client:    db,
		TableName: testTableHackathons,
	}
	registrationStorage := &storage.DynamoRegistrationStorage{
		Client:    db,
		TableName: testTableRegistrations,
	}

	t.Cleanup(func() {
		cleanupTable(t, db, testTableHackathons)
		cleanupTable(t, db, testTableRegistrations, "PK", "SK")
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHackathonController(hackathonStorage).RegisterRoutes(r)
	NewRoundController(hackathonStorage).RegisterRoutes(r)
	NewRegistrationController(registrationStorage, hackathonStorage).RegisterRoutes(r)
	NewSubmissionController(hackathonStorage, registrationStorage, storage.NoopLeaderboardCache{}).RegisterRoutes(r)
	NewLeaderboardController(hackathonStorage, storage.NoopLeaderboardCache{}).RegisterRoutes(r)
	return r
}

// approvedHackathonWithActiveRound creates a hackathon, approves it as admin
// and starts its only round. Returns the fresh document.
func approvedHackathonWithActiveRound(t *testing.T, router *gin.Engine, organizer string) models.HackathonResponse {
	t.Helper()

	created := createHackathon(t, router, organizer, "Build")

	w := testutils.PerformRequest(router, http.MethodPut, "/api/hackathons/"+created.ID+"/status",
		models.HackathonStatusRequest{Status: "approved"}, testutils.AuthHeaders(adminToken(t)))
	require.Equal(t, http.StatusOK, w.Code, "Expected 200 approving hackathon: %s", w.Body.String())

	w = testutils.PerformRequest(router, http.MethodPost,
		"/api/hackathons/"+created.ID+"/rounds/"+created.Rounds[0].ID+"/start", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code, "Expected 200 starting round: %s", w.Body.String())

	return fetchHackathon(t, router, created.ID)
}

func registerParticipant(t *testing.T, router *gin.Engine, hackathonID, token string) {
	t.Helper()
	w := testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+hackathonID+"/register",
		models.RegistrationRequest{TeamName: "Team Rocket"}, testutils.AuthHeaders(token))
	require.Equal(t, http.StatusOK, w.Code, "Expected 200 registering participant: %s", w.Body.String())
}

func TestSubmitToRound(t *testing.T) {
	router := setupSubmissionTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-1", "Pat Participant")

	h := approvedHackathonWithActiveRound(t, router, organizer)
	subPath := "/api/hackathons/" + h.ID + "/rounds/" + h.Rounds[0].ID + "/submissions"

	t.Run("Unhappy path - unregistered caller gets 403", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, subPath,
			models.SubmissionCreateRequest{URL: "https://github.com/pat/project"}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	registerParticipant(t, router, h.ID, participant)

	t.Run("Happy path - registered participant submits", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, subPath,
			models.SubmissionCreateRequest{URL: "https://github.com/pat/project", Notes: "v1"}, testutils.AuthHeaders(participant))
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 submitting: %s", w.Body.String())

		var resp models.SubmissionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "user-1", resp.UserID)
		assert.Equal(t, "submitted", resp.Status)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("Unhappy path - second submission from same user gets 409", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, subPath,
			models.SubmissionCreateRequest{URL: "https://github.com/pat/project-v2"}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unhappy path - missing url gets 400", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, subPath,
			models.SubmissionCreateRequest{Notes: "oops"}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitRejectedWhenRoundNotActive(t *testing.T) {
	router := setupSubmissionTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-2", "Quinn Participant")

	h := approvedHackathonWithActiveRound(t, router, organizer)
	registerParticipant(t, router, h.ID, participant)

	// Close the round first
	w := testutils.PerformRequest(router, http.MethodPost,
		"/api/hackathons/"+h.ID+"/rounds/"+h.Rounds[0].ID+"/complete", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(router, http.MethodPost,
		"/api/hackathons/"+h.ID+"/rounds/"+h.Rounds[0].ID+"/submissions",
		models.SubmissionCreateRequest{URL: "https://github.com/quinn/late"}, testutils.AuthHeaders(participant))
	assert.Equal(t, http.StatusConflict, w.Code, "Completed round must not take submissions")
}

func TestSubmissionsSurviveReactivation(t *testing.T) {
	router := setupSubmissionTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-3", "Robin Participant")

	h := approvedHackathonWithActiveRound(t, router, organizer)
	registerParticipant(t, router, h.ID, participant)

	base := "/api/hackathons/" + h.ID + "/rounds/" + h.Rounds[0].ID
	w := testutils.PerformRequest(router, http.MethodPost, base+"/submissions",
		models.SubmissionCreateRequest{URL: "https://github.com/robin/project"}, testutils.AuthHeaders(participant))
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(router, http.MethodPost, base+"/complete", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)
	w = testutils.PerformRequest(router, http.MethodPost, base+"/start", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)

	after := fetchHackathon(t, router, h.ID)
	assert.Equal(t, 1, after.Rounds[0].Submissions, "Reactivation must preserve submissions")
}

func TestReviewSubmission(t *testing.T) {
	router := setupSubmissionTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-4", "Sam Participant")

	h := approvedHackathonWithActiveRound(t, router, organizer)
	registerParticipant(t, router, h.ID, participant)

	subPath := "/api/hackathons/" + h.ID + "/rounds/" + h.Rounds[0].ID + "/submissions"
	w := testutils.PerformRequest(router, http.MethodPost, subPath,
		models.SubmissionCreateRequest{URL: "https://github.com/sam/project"}, testutils.AuthHeaders(participant))
	require.Equal(t, http.StatusOK, w.Code)
	var sub models.SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))

	t.Run("Unhappy path - participant cannot review", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPut, subPath+"/"+sub.ID+"/review",
			models.SubmissionReviewRequest{Status: "verified", Score: 90}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unhappy path - verdict must be verified or rejected", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPut, subPath+"/"+sub.ID+"/review",
			models.SubmissionReviewRequest{Status: "maybe"}, testutils.AuthHeaders(organizer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Happy path - organizer verifies with a score", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPut, subPath+"/"+sub.ID+"/review",
			models.SubmissionReviewRequest{Status: "verified", Score: 90}, testutils.AuthHeaders(organizer))
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 reviewing: %s", w.Body.String())

		var reviewed models.SubmissionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviewed))
		assert.Equal(t, "verified", reviewed.Status)
		assert.Equal(t, 90, reviewed.Score)
		assert.NotNil(t, reviewed.ReviewedAt)

		// The review lands in the round's evaluation history
		after := fetchHackathon(t, router, h.ID)
		assert.Equal(t, "in-progress", after.Rounds[0].Evaluation.Current)
		last := after.Rounds[0].Evaluation.History[len(after.Rounds[0].Evaluation.History)-1]
		assert.Equal(t, "in-progress", last.Status)
	})

	t.Run("Happy path - verified score shows on the leaderboard", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/hackathons/"+h.ID+"/leaderboard", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []storage.LeaderboardEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "user-4", entries[0].UserID)
		assert.Equal(t, 90, entries[0].Score)
		assert.Equal(t, 1, entries[0].Rank)
	})
}

func TestRegistrationRules(t *testing.T) {
	router := setupSubmissionTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-5", "Tia Participant")

	created := createHackathon(t, router, organizer, "Build")

	t.Run("Unhappy path - pending hackathon does not accept registrations", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+created.ID+"/register",
			models.RegistrationRequest{}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	w := testutils.PerformRequest(router, http.MethodPut, "/api/hackathons/"+created.ID+"/status",
		models.HackathonStatusRequest{Status: "approved"}, testutils.AuthHeaders(adminToken(t)))
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("Happy path - approved hackathon accepts registration once", func(t *testing.T) {
		registerParticipant(t, router, created.ID, participant)

		w := testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+created.ID+"/register",
			models.RegistrationRequest{}, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusConflict, w.Code, "Duplicate registration must be rejected")
	})

	t.Run("Happy path - organizer lists participants", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/hackathons/"+created.ID+"/participants", nil, testutils.AuthHeaders(organizer))
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 listing participants: %s", w.Body.String())

		var regs []models.RegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
		require.Len(t, regs, 1)
		assert.Equal(t, "user-5", regs[0].UserID)
	})

	t.Run("Unhappy path - participant cannot list participants", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/hackathons/"+created.ID+"/participants", nil, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Happy path - participant sees own registrations", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/registrations/mine", nil, testutils.AuthHeaders(participant))
		require.Equal(t, http.StatusOK, w.Code)

		var regs []models.RegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
		require.Len(t, regs, 1)
		assert.Equal(t, created.ID, regs[0].HackathonID)
	})
}
