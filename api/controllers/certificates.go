package controllers

import (
	"errors"
	"net/http"

	"github.com/Charan-Crafts/hackathon-platform/api/models"
	"github.com/Charan-Crafts/hackathon-platform/api/transport"
	"github.com/Charan-Crafts/hackathon-platform/logging"
	"github.com/Charan-Crafts/hackathon-platform/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type CertificateController struct {
	certificatesStorage  storage.CertificateStorage
	registrationsStorage storage.RegistrationStorage
	hackathonsStorage    storage.HackathonStorage
}

func NewCertificateController(certStorage storage.CertificateStorage, regStorage storage.RegistrationStorage, hackStorage storage.HackathonStorage) *CertificateController {
	return &CertificateController{
		certificatesStorage:  certStorage,
		registrationsStorage: regStorage,
		hackathonsStorage:    hackStorage,
	}
}

func (c *CertificateController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/hackathons/:id/certificates", transport.AuthMiddleware(), c.issue)
	engine.GET("/api/certificates/verify/:code", c.verify)
	engine.GET("/api/certificates/mine", transport.AuthMiddleware(), c.mine)
}

// issue godoc
// @Summary Issue participation certificates
// @Description Issues a certificate with a unique verification code to every registered participant once all rounds are completed. Participants who already hold one are skipped.
// @Tags certificates
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {array} models.CertificateResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Hackathon not finished"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/certificates [post]
func (c *CertificateController) issue(g *gin.Context) {
	h, err := c.hackathonsStorage.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "hackathon not found"})
			return
		}
		logging.Log.Errorf("CERTIFICATE: failed to get hackathon: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load hackathon"})
		return
	}

	if !isOwner(g, h) {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only the organizer can issue certificates"})
		return
	}
	if !h.AllRoundsCompleted() {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "all rounds must be completed before issuing certificates"})
		return
	}

	regs, err := c.registrationsStorage.GetByHackathon(g.Request.Context(), h.ID)
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to list participants: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list participants"})
		return
	}

	existing, err := c.certificatesStorage.GetByHackathon(g.Request.Context(), h.ID)
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to list existing certificates: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list certificates"})
		return
	}
	issued := make(map[string]bool, len(existing))
	for _, cert := range existing {
		issued[cert.UserID] = true
	}

	created := make([]models.CertificateResponse, 0, len(regs))
	for _, reg := range regs {
		if issued[reg.UserID] {
			continue
		}
		cert := &storage.Certificate{
			Code:           c.generateCode(),
			HackathonID:    h.ID,
			HackathonTitle: h.Title,
			UserID:         reg.UserID,
			UserName:       reg.UserName,
		}
		if err := c.certificatesStorage.Put(g.Request.Context(), cert); err != nil {
			logging.Log.Errorf("CERTIFICATE: failed to store certificate for %s: %v", reg.UserID, err)
			continue
		}
		created = append(created, models.TransformCertificateFromStorage(cert))
	}

	logging.Log.Infof("CERTIFICATE: issued %d certificates for hackathon %s", len(created), h.ID)
	g.JSON(http.StatusOK, created)
}

// verify godoc
// @Summary Verify a certificate code
// @Description Public check that a certificate code is genuine
// @Tags certificates
// @Produce json
// @Param code path string true "Certificate code"
// @Success 200 {object} models.CertificateVerificationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/certificates/verify/{code} [get]
func (c *CertificateController) verify(g *gin.Context) {
	code := g.Param("code")
	if code == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "code is required"})
		return
	}

	cert, err := c.certificatesStorage.Get(g.Request.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "certificate not found: " + code})
			return
		}
		logging.Log.Errorf("CERTIFICATE: failed to get certificate: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not verify certificate"})
		return
	}

	g.JSON(http.StatusOK, models.TransformCertificateToVerification(cert))
}

// mine godoc
// @Summary List the caller's certificates
// @Tags certificates
// @Produce json
// @Success 200 {array} models.CertificateResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/certificates/mine [get]
func (c *CertificateController) mine(g *gin.Context) {
	certs, err := c.certificatesStorage.GetByUser(g.Request.Context(), g.GetString(transport.ContextUserID))
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to list certificates: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not list certificates"})
		return
	}

	responses := make([]models.CertificateResponse, 0, len(certs))
	for _, cert := range certs {
		responses = append(responses, models.TransformCertificateFromStorage(cert))
	}
	g.JSON(http.StatusOK, responses)
}

func (c *CertificateController) generateCode() string {
	code, err := gonanoid.Generate(models.CertificateAlphabet, 10)
	if err != nil {
		logging.Log.Errorf("CERTIFICATE: failed to generate code: %v", err)
		return "ERROR"
	}
	return code
}
