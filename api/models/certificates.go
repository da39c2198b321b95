package models

import (
	"time"

	"github.com/Charan-Crafts/hackathon-platform/storage"
)

type CertificateResponse struct {
	Code           string    `json:"code"`
	HackathonID    string    `json:"hackathonId"`
	HackathonTitle string    `json:"hackathonTitle"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	IssuedAt       time.Time `json:"issuedAt"`
}

type CertificateVerificationResponse struct {
	Valid          bool      `json:"valid"`
	Code           string    `json:"code"`
	HackathonTitle string    `json:"hackathonTitle"`
	UserName       string    `json:"userName"`
	IssuedAt       time.Time `json:"issuedAt"`
}

func TransformCertificateFromStorage(c *storage.Certificate) CertificateResponse {
	return CertificateResponse{
		Code:           c.Code,
		HackathonID:    c.HackathonID,
		HackathonTitle: c.HackathonTitle,
		UserID:         c.UserID,
		UserName:       c.UserName,
		IssuedAt:       c.IssuedAt,
	}
}

func TransformCertificateToVerification(c *storage.Certificate) CertificateVerificationResponse {
	return CertificateVerificationResponse{
		Valid:          true,
		Code:           c.Code,
		HackathonTitle: c.HackathonTitle,
		UserName:       c.UserName,
		IssuedAt:       c.IssuedAt,
	}
}
