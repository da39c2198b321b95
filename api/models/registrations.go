package models

import (
	"time"

	"github.com/Charan-Crafts/hackathon-platform/storage"
)

type RegistrationRequest struct {
	TeamName string `json:"teamName"`
}

type RegistrationResponse struct {
	HackathonID  string    `json:"hackathonId"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	TeamName     string    `json:"teamName,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func TransformRegistrationFromStorage(r *storage.Registration) RegistrationResponse {
	return RegistrationResponse{
		HackathonID:  r.HackathonID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		Email:        r.Email,
		TeamName:     r.TeamName,
		RegisteredAt: r.RegisteredAt,
	}
}
