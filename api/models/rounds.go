package models

import (
	"time"

	"github.com/Charan-Crafts/hackathon-platform/storage"
)

type CustomField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type RoundCreateRequest struct {
	Name           string        `json:"name"`
	Type           string        `json:"type"`
	Description    string        `json:"description"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	PlatformLink   string        `json:"platformLink"`
	SubmissionType string        `json:"submissionType"`
	CustomFields   []CustomField `json:"customFields"`
}

// RoundDetailsUpdateRequest carries only descriptive fields. Status,
// submissions and evaluation history are never writable through it.
type RoundDetailsUpdateRequest struct {
	Name           string        `json:"name"`
	Type           string        `json:"type"`
	Description    string        `json:"description"`
	StartDate      *time.Time    `json:"startDate"`
	EndDate        *time.Time    `json:"endDate"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	PlatformLink   string        `json:"platformLink"`
	SubmissionType string        `json:"submissionType"`
	CustomFields   []CustomField `json:"customFields"`
}

type RoundStatusRequest struct {
	Status string `json:"status"`
}

type EvaluationEvent struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

type EvaluationStatus struct {
	Current string            `json:"current"`
	History []EvaluationEvent `json:"history"`
}

type RoundResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Description    string           `json:"description"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	StartTime      string           `json:"startTime"`
	EndTime        string           `json:"endTime"`
	PlatformLink   string           `json:"platformLink"`
	SubmissionType string           `json:"submissionType"`
	Status         string           `json:"status"`
	PreviousStatus string           `json:"previousStatus,omitempty"`
	ReactivatedAt  *time.Time       `json:"reactivatedAt,omitempty"`
	CustomFields   []CustomField    `json:"customFields,omitempty"`
	Evaluation     EvaluationStatus `json:"evaluation"`
	Submissions    int              `json:"submissions"`
}

func TransformRoundFromStorage(r *storage.Round) RoundResponse {
	fields := make([]CustomField, 0, len(r.CustomFields))
	for _, f := range r.CustomFields {
		fields = append(fields, CustomField{
			Name:     f.Name,
			Type:     f.Type,
			Required: f.Required,
			Options:  f.Options,
		})
	}

	history := make([]EvaluationEvent, 0, len(r.Evaluation.History))
	for _, e := range r.Evaluation.History {
		history = append(history, EvaluationEvent{
			Status:    e.Status,
			Timestamp: e.Timestamp,
			Reason:    e.Reason,
		})
	}

	return RoundResponse{
		ID:             r.ID,
		Name:           r.Name,
		Type:           r.Type,
		Description:    r.Description,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		PlatformLink:   r.PlatformLink,
		SubmissionType: r.SubmissionType,
		Status:         string(r.Status),
		PreviousStatus: string(r.PreviousStatus),
		ReactivatedAt:  r.ReactivatedAt,
		CustomFields:   fields,
		Evaluation: EvaluationStatus{
			Current: r.Evaluation.Current,
			History: history,
		},
		Submissions: len(r.Submissions),
	}
}

func (f CustomField) ToStorage() storage.CustomField {
	return storage.CustomField{
		Name:     f.Name,
		Type:     f.Type,
		Required: f.Required,
		Options:  f.Options,
	}
}
