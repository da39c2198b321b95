package storage

import (
	"math"
	"time"
)

const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
	RoleAdmin       = "admin"
)

type HackathonStatus string

const (
	HackathonPending  HackathonStatus = "pending"
	HackathonApproved HackathonStatus = "approved"
	HackathonRejected HackathonStatus = "rejected"
)

type RoundStatus string

const (
	RoundPending   RoundStatus = "pending"
	RoundActive    RoundStatus = "active"
	RoundCompleted RoundStatus = "completed"
)

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionVerified  SubmissionStatus = "verified"
	SubmissionRejected  SubmissionStatus = "rejected"
)

const (
	EvaluationPending    = "pending"
	EvaluationInProgress = "in-progress"
)

type User struct {
	Email        string    `dynamodbav:"PK"`
	ID           string    `dynamodbav:"ID"`
	Name         string    `dynamodbav:"Name"`
	PasswordHash string    `dynamodbav:"PasswordHash"`
	Role         string    `dynamodbav:"Role"`
	Verified     bool      `dynamodbav:"Verified"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt"`
}

type Hackathon struct {
	ID            string          `dynamodbav:"PK"`
	Title         string          `dynamodbav:"Title"`
	Description   string          `dynamodbav:"Description"`
	OrganizerID   string          `dynamodbav:"OrganizerID"`
	OrganizerName string          `dynamodbav:"OrganizerName"`
	Status        HackathonStatus `dynamodbav:"Status"`
	LocationType  string          `dynamodbav:"LocationType"`
	Prize         string          `dynamodbav:"Prize"`
	Fee           int             `dynamodbav:"Fee"`
	Rounds        []Round         `dynamodbav:"Rounds"`
	Version       int             `dynamodbav:"Version"`
	CreatedAt     time.Time       `dynamodbav:"CreatedAt"`
	UpdatedAt     time.Time       `dynamodbav:"UpdatedAt"`
}

// Round order inside a hackathon is significant: it defines the
// timeline and "next round" semantics.
type Round struct {
	ID             string           `dynamodbav:"ID"`
	Name           string           `dynamodbav:"Name"`
	Type           string           `dynamodbav:"Type"`
	Description    string           `dynamodbav:"Description"`
	StartDate      time.Time        `dynamodbav:"StartDate"`
	EndDate        time.Time        `dynamodbav:"EndDate"`
	StartTime      string           `dynamodbav:"StartTime"`
	EndTime        string           `dynamodbav:"EndTime"`
	PlatformLink   string           `dynamodbav:"PlatformLink"`
	SubmissionType string           `dynamodbav:"SubmissionType"`
	Status         RoundStatus      `dynamodbav:"Status"`
	PreviousStatus RoundStatus      `dynamodbav:"PreviousStatus"`
	ReactivatedAt  *time.Time       `dynamodbav:"ReactivatedAt"`
	CustomFields   []CustomField    `dynamodbav:"CustomFields"`
	Submissions    []Submission     `dynamodbav:"Submissions"`
	Evaluation     EvaluationStatus `dynamodbav:"Evaluation"`
}

type CustomField struct {
	Name     string   `dynamodbav:"Name"`
	Type     string   `dynamodbav:"Type"`
	Required bool     `dynamodbav:"Required"`
	Options  []string `dynamodbav:"Options"`
}

type Submission struct {
	ID          string           `dynamodbav:"ID"`
	UserID      string           `dynamodbav:"UserID"`
	UserName    string           `dynamodbav:"UserName"`
	URL         string           `dynamodbav:"URL"`
	Notes       string           `dynamodbav:"Notes"`
	Status      SubmissionStatus `dynamodbav:"Status"`
	Score       int              `dynamodbav:"Score"`
	SubmittedAt time.Time        `dynamodbav:"SubmittedAt"`
	ReviewedAt  *time.Time       `dynamodbav:"ReviewedAt"`
	ReviewedBy  string           `dynamodbav:"ReviewedBy"`
}

// EvaluationStatus holds the current evaluation state of a round plus an
// append-only history of changes. History entries are never mutated in place.
type EvaluationStatus struct {
	Current string            `dynamodbav:"Current"`
	History []EvaluationEvent `dynamodbav:"History"`
}

type EvaluationEvent struct {
	Status    string    `dynamodbav:"Status"`
	Timestamp time.Time `dynamodbav:"Timestamp"`
	Reason    string    `dynamodbav:"Reason"`
}

type Registration struct {
	HackathonID  string    `dynamodbav:"PK"`
	UserID       string    `dynamodbav:"SK"`
	UserName     string    `dynamodbav:"UserName"`
	Email        string    `dynamodbav:"Email"`
	TeamName     string    `dynamodbav:"TeamName"`
	RegisteredAt time.Time `dynamodbav:"RegisteredAt"`
}

type Certificate struct {
	Code           string    `dynamodbav:"PK"`
	HackathonID    string    `dynamodbav:"HackathonID"`
	HackathonTitle string    `dynamodbav:"HackathonTitle"`
	UserID         string    `dynamodbav:"UserID"`
	UserName       string    `dynamodbav:"UserName"`
	IssuedAt       time.Time `dynamodbav:"IssuedAt"`
}

func (h *Hackathon) RoundByID(id string) *Round {
	for i := range h.Rounds {
		if h.Rounds[i].ID == id {
			return &h.Rounds[i]
		}
	}
	return nil
}

func (h *Hackathon) ActiveRound() *Round {
	for i := range h.Rounds {
		if h.Rounds[i].Status == RoundActive {
			return &h.Rounds[i]
		}
	}
	return nil
}

func (h *Hackathon) HasActiveRound() bool {
	return h.ActiveRound() != nil
}

// Progress is derived, never stored: completed rounds over total rounds,
// as a percentage rounded to the nearest integer.
func (h *Hackathon) Progress() int {
	if len(h.Rounds) == 0 {
		return 0
	}
	completed := 0
	for i := range h.Rounds {
		if h.Rounds[i].Status == RoundCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(h.Rounds)) * 100))
}

// StartRound transitions a round to active. At most one round per hackathon
// may be active, so the transition is rejected while any round (including the
// target itself) is active. Submissions survive reactivation untouched; the
// evaluation history only ever grows.
func (h *Hackathon) StartRound(roundID string, now time.Time) error {
	r := h.RoundByID(roundID)
	if r == nil {
		return ErrRoundNotFound
	}
	if h.HasActiveRound() {
		return ErrActiveRoundExists
	}

	reason := "round activated"
	if r.PreviousStatus != "" || r.Status == RoundCompleted {
		reason = "round reactivated"
	}

	r.PreviousStatus = r.Status
	r.ReactivatedAt = &now
	r.Status = RoundActive
	r.Evaluation.Current = EvaluationPending
	r.Evaluation.History = append(r.Evaluation.History, EvaluationEvent{
		Status:    EvaluationPending,
		Timestamp: now,
		Reason:    reason,
	})
	return nil
}

// CompleteRound transitions an active round to completed. Only an active
// round can be completed.
func (h *Hackathon) CompleteRound(roundID string, now time.Time) error {
	r := h.RoundByID(roundID)
	if r == nil {
		return ErrRoundNotFound
	}
	if r.Status != RoundActive {
		return ErrRoundNotActive
	}

	r.PreviousStatus = RoundActive
	r.Status = RoundCompleted
	r.Evaluation.History = append(r.Evaluation.History, EvaluationEvent{
		Status:    r.Evaluation.Current,
		Timestamp: now,
		Reason:    "round completed",
	})
	return nil
}

// SetRoundStatus is the organizer's direct override. It bypasses the
// single-active-round guard and can move a completed round back to pending
// or active. Every override is recorded in the evaluation history.
func (h *Hackathon) SetRoundStatus(roundID string, status RoundStatus, now time.Time) error {
	switch status {
	case RoundPending, RoundActive, RoundCompleted:
	default:
		return ErrInvalidRoundStatus
	}

	r := h.RoundByID(roundID)
	if r == nil {
		return ErrRoundNotFound
	}

	r.PreviousStatus = r.Status
	if status == RoundActive {
		r.ReactivatedAt = &now
		r.Evaluation.Current = EvaluationPending
	}
	r.Status = status
	r.Evaluation.History = append(r.Evaluation.History, EvaluationEvent{
		Status:    r.Evaluation.Current,
		Timestamp: now,
		Reason:    "status override to " + string(status),
	})
	return nil
}

// SubmissionByID resolves a submission within the round.
func (r *Round) SubmissionByID(id string) *Submission {
	for i := range r.Submissions {
		if r.Submissions[i].ID == id {
			return &r.Submissions[i]
		}
	}
	return nil
}

// AllRoundsCompleted reports whether the hackathon has run its full course.
func (h *Hackathon) AllRoundsCompleted() bool {
	if len(h.Rounds) == 0 {
		return false
	}
	for i := range h.Rounds {
		if h.Rounds[i].Status != RoundCompleted {
			return false
		}
	}
	return true
}

// ToggleStatus flips the approval status between approved and pending.
func (h *Hackathon) ToggleStatus() {
	if h.Status == HackathonApproved {
		h.Status = HackathonPending
	} else {
		h.Status = HackathonApproved
	}
}
