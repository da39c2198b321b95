package models

var CertificateAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var ValidSignupRoles = map[string]string{
	"participant": "Participant",
	"organizer":   "Organizer",
}

var ValidSubmissionTypes = map[string]string{
	"github": "GitHub repository",
	"drive":  "Drive link",
	"other":  "Other",
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
