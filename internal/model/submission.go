package model

// Package model contains the portal's domain data structures.
// These are pure DTOs with no transport or backend coupling; they live for a
// single request/response cycle and are discarded once the pipeline finishes.

// AVSupportSubmission is a parsed AV support form post.
// Name, Email, Subject and Description are required; the rest may be blank.
type AVSupportSubmission struct {
	Name        string
	Email       string
	Subject     string
	Description string
	Building    string
	Room        string
	DateNeeded  string
	// RecaptchaToken is the client-side challenge response, verified before
	// any field is processed.
	RecaptchaToken string
}

// SignageSubmission is a parsed digital signage form post.
// Name, Email, Department and File are required; the dates and notes may be blank.
type SignageSubmission struct {
	Name           string
	Email          string
	Department     string
	StartDate      string
	EndDate        string
	Notes          string
	RecaptchaToken string
	File           *CandidateFile
}

// CandidateFile is an untrusted uploaded file.
//
// Data is read from the request exactly once and owned by this struct, so the
// same bytes feed both content sniffing and the backend upload. SniffedType is
// populated by the upload gate from Data alone; the client-declared
// Content-Type and the filename are never trusted for it.
type CandidateFile struct {
	Filename    string
	Data        []byte
	SniffedType string
}
