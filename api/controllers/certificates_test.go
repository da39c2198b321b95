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

func setupCertificateTest(t *testing.T) *gin.Engine {
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
	certificateStorage := &storage.DynamoCertificateStorage{
		Client:    db,
		TableName: testTableCertificates,
	}

	t.Cleanup(func() {
		cleanupTable(t, db, testTableHackathons)
		cleanupTable(t, db, testTableRegistrations, "PK", "SK")
		cleanupTable(t, db, testTableCertificates)
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHackathonController(hackathonStorage).RegisterRoutes(r)
	NewRoundController(hackathonStorage).RegisterRoutes(r)
	NewRegistrationController(registrationStorage, hackathonStorage).RegisterRoutes(r)
	NewCertificateController(certificateStorage, registrationStorage, hackathonStorage).RegisterRoutes(r)
	return r
}

// finishedHackathon creates an approved hackathon with one registered
// participant and runs its single round to completion.
func finishedHackathon(t *testing.T, router *gin.Engine, organizer, participant string) models.HackathonResponse {
	t.Helper()

	created := createHackathon(t, router, organizer, "Build")

	w := testutils.PerformRequest(router, http.MethodPut, "/api/hackathons/"+created.ID+"/status",
		models.HackathonStatusRequest{Status: "approved"}, testutils.AuthHeaders(adminToken(t)))
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+created.ID+"/register",
		models.RegistrationRequest{}, testutils.AuthHeaders(participant))
	require.Equal(t, http.StatusOK, w.Code)

	base := "/api/hackathons/" + created.ID + "/rounds/" + created.Rounds[0].ID
	w = testutils.PerformRequest(router, http.MethodPost, base+"/start", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)
	w = testutils.PerformRequest(router, http.MethodPost, base+"/complete", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)

	return fetchHackathon(t, router, created.ID)
}

func TestIssueCertificates(t *testing.T) {
	router := setupCertificateTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-7", "Uma Participant")

	t.Run("Unhappy path - rounds still open gets 409", func(t *testing.T) {
		created := createHackathon(t, router, organizer, "Build")
		w := testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+created.ID+"/certificates", nil, testutils.AuthHeaders(organizer))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	h := finishedHackathon(t, router, organizer, participant)
	issuePath := "/api/hackathons/" + h.ID + "/certificates"

	t.Run("Unhappy path - participant cannot issue", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, issuePath, nil, testutils.AuthHeaders(participant))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Happy path - one certificate per participant, reissue skips holders", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodPost, issuePath, nil, testutils.AuthHeaders(organizer))
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 issuing certificates: %s", w.Body.String())

		var certs []models.CertificateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &certs))
		require.Len(t, certs, 1)
		assert.Equal(t, "user-7", certs[0].UserID)
		assert.Len(t, certs[0].Code, 10)

		// Issuing again must not mint duplicates
		w = testutils.PerformRequest(router, http.MethodPost, issuePath, nil, testutils.AuthHeaders(organizer))
		require.Equal(t, http.StatusOK, w.Code)
		var again []models.CertificateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
		assert.Empty(t, again)
	})
}

func TestVerifyCertificate(t *testing.T) {
	router := setupCertificateTest(t)
	organizer := organizerToken(t)
	participant := participantToken(t, "user-8", "Vik Participant")

	h := finishedHackathon(t, router, organizer, participant)

	w := testutils.PerformRequest(router, http.MethodPost, "/api/hackathons/"+h.ID+"/certificates", nil, testutils.AuthHeaders(organizer))
	require.Equal(t, http.StatusOK, w.Code)
	var certs []models.CertificateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &certs))
	require.Len(t, certs, 1)

	t.Run("Happy path - anonymous verification of a real code", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/certificates/verify/"+certs[0].Code, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, "Expected 200 verifying: %s", w.Body.String())

		var resp models.CertificateVerificationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, certs[0].Code, resp.Code)
		assert.Equal(t, "Vik Participant", resp.UserName)
	})

	t.Run("Unhappy path - unknown code gets 404", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/certificates/verify/NOPE404XYZ", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Happy path - participant lists own certificates", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/certificates/mine", nil, testutils.AuthHeaders(participant))
		require.Equal(t, http.StatusOK, w.Code)

		var mine []models.CertificateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
		require.Len(t, mine, 1)
		assert.Equal(t, h.ID, mine[0].HackathonID)
	})
}
