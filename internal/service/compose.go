package service

import (
	"fmt"
	"strings"

	"ticketportal/internal/model"
)

// Composition is deterministic: the same submission always yields the same
// body text, with explicit fallback text where an optional field was left
// blank. Agents triage on these lines, so the layout is part of the contract.

func composeAVSupportBody(sub *model.AVSupportSubmission) string {
	var b strings.Builder
	b.WriteString(sub.Description)
	b.WriteString("\n\n---\n")
	b.WriteString("Portal Form: AV Support\n")
	fmt.Fprintf(&b, "Location: %s %s\n", sub.Building, sub.Room)
	fmt.Fprintf(&b, "Date Needed: %s\n", sub.DateNeeded)
	fmt.Fprintf(&b, "Requester: %s (%s)\n", sub.Name, sub.Email)
	fmt.Fprintf(&b, "Tag: %s\n", TagAVSupport)
	return b.String()
}

func composeSignageBody(sub *model.SignageSubmission) string {
	var b strings.Builder
	b.WriteString("Digital Signage Request\n")
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "Requester: %s (%s)\n", sub.Name, sub.Email)
	fmt.Fprintf(&b, "Department/Club: %s\n", sub.Department)
	fmt.Fprintf(&b, "Start Date: %s\n", orBlank(sub.StartDate, "Run immediately (blank)"))
	fmt.Fprintf(&b, "End Date: %s\n", orBlank(sub.EndDate, "Take down day after event (blank)"))
	fmt.Fprintf(&b, "Additional Notes: %s\n", orBlank(sub.Notes, "(none)"))
	b.WriteString("\nAttachment: uploaded via portal\n")
	fmt.Fprintf(&b, "Tag: %s\n", TagDigitalSignage)
	return b.String()
}

func orBlank(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
