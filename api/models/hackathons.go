package models

import (
	"time"

	"github.com/Charan-Crafts/hackathon-platform/storage"
)

type HackathonCreateRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	LocationType string               `json:"locationType"`
	Prize        string               `json:"prize"`
	Fee          int                  `json:"fee"`
	Rounds       []RoundCreateRequest `json:"rounds"`
}

type HackathonUpdateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	LocationType string `json:"locationType"`
	Prize        string `json:"prize"`
	Fee          *int   `json:"fee"`
}

// HackathonStatusRequest with an empty status toggles between approved
// and pending.
type HackathonStatusRequest struct {
	Status string `json:"status"`
}

type HackathonResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	OrganizerID    string          `json:"organizerId"`
	OrganizerName  string          `json:"organizerName"`
	Status         string          `json:"status"`
	LocationType   string          `json:"locationType"`
	Prize          string          `json:"prize"`
	Fee            int             `json:"fee"`
	Rounds         []RoundResponse `json:"rounds"`
	Progress       int             `json:"progress"`
	HasActiveRound bool            `json:"hasActiveRound"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func TransformHackathonFromStorage(h *storage.Hackathon) HackathonResponse {
	rounds := make([]RoundResponse, 0, len(h.Rounds))
	for i := range h.Rounds {
		rounds = append(rounds, TransformRoundFromStorage(&h.Rounds[i]))
	}

	return HackathonResponse{
		ID:             h.ID,
		Title:          h.Title,
		Description:    h.Description,
		OrganizerID:    h.OrganizerID,
		OrganizerName:  h.OrganizerName,
		Status:         string(h.Status),
		LocationType:   h.LocationType,
		Prize:          h.Prize,
		Fee:            h.Fee,
		Rounds:         rounds,
		Progress:       h.Progress(),
		HasActiveRound: h.HasActiveRound(),
		Version:        h.Version,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}
