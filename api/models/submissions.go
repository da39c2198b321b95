package models

import (
	"time"

	"github.com/Charan-Crafts/hackathon-platform/storage"
)

type SubmissionCreateRequest struct {
	URL   string `json:"url"`
	Notes string `json:"notes"`
}

type SubmissionReviewRequest struct {
	Status string `json:"status"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type SubmissionResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	UserName    string     `json:"userName"`
	URL         string     `json:"url"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	Score       int        `json:"score"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy  string     `json:"reviewedBy,omitempty"`
}

func TransformSubmissionFromStorage(s *storage.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		UserName:    s.UserName,
		URL:         s.URL,
		Notes:       s.Notes,
		Status:      string(s.Status),
		Score:       s.Score,
		SubmittedAt: s.SubmittedAt,
		ReviewedAt:  s.ReviewedAt,
		ReviewedBy:  s.ReviewedBy,
	}
}
