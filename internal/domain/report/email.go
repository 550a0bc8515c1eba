package report

import (
	"fmt"
	"strings"
)

// Email types and tones accepted by DraftEmail.
const (
	EmailReminder       = "REMINDER"
	EmailUpdate         = "UPDATE"
	EmailPaymentRequest = "PAYMENT_REQUEST"

	ToneFormal   = "FORMAL"
	ToneFriendly = "FRIENDLY"
)

// ValidEmailType reports whether t is a known email type.
func ValidEmailType(t string) bool {
	switch t {
	case EmailReminder, EmailUpdate, EmailPaymentRequest:
		return true
	}
	return false
}

// ValidTone reports whether t is a known tone.
func ValidTone(t string) bool {
	return t == ToneFormal || t == ToneFriendly
}

// Email is a rendered draft.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailInput carries the already-authorized context for a draft: the
// project name may be empty when no project is attached, and progress is
// the completion percentage computed by the analytics engine.
type EmailInput struct {
	RecipientName string
	EmailType     string
	Tone          string
	ProjectName   string
	Progress      int
}

// DraftEmail renders a client-facing email draft.
func DraftEmail(in EmailInput) Email {
	formal := in.Tone == ToneFormal

	salutation := fmt.Sprintf("Hi %s!", in.RecipientName)
	closing := "Best regards,\nThe Team"
	if formal {
		salutation = fmt.Sprintf("Dear Mr./Ms. %s,", in.RecipientName)
		closing = "Sincerely,\nThe Crewbase Project Team"
	}

	projectName := in.ProjectName
	if projectName == "" {
		projectName = "our current project"
	}

	var content string
	switch in.EmailType {
	case EmailReminder:
		if formal {
			content = fmt.Sprintf("I am writing to provide a formal update regarding the progress of %q. We have reached %d%% completion and are proceeding in accordance with the established schedule.", projectName, in.Progress)
		} else {
			content = fmt.Sprintf("Just a quick note to let you know that %s is moving along great! We're already %d%% done.", projectName, in.Progress)
		}
	case EmailUpdate:
		if formal {
			content = "Please find enclosed the latest status report for your review. We are currently focusing on the next set of deliverables with high efficiency."
		} else {
			content = "Hey! Things are looking awesome. We've made some solid progress this week and wanted to keep you in the loop on how everything is shaping up."
		}
	case EmailPaymentRequest:
		if formal {
			content = fmt.Sprintf("We have issued a new invoice for services rendered on %q. Your prompt attention to this matter would be greatly appreciated to ensure continued momentum.", projectName)
		} else {
			content = fmt.Sprintf("We just sent over a new invoice for the latest work on %s. Let us know if you have any questions-otherwise, we're ready to dive into the next phase!", projectName)
		}
	}

	subjectName := in.ProjectName
	if subjectName == "" {
		subjectName = "Project Progress"
	}
	prefix := "[Update] "
	if !formal {
		prefix = ""
	}
	subject := fmt.Sprintf("%s%s - %s", prefix, subjectName, strings.ReplaceAll(in.EmailType, "_", " "))

	return Email{
		Subject: subject,
		Body:    fmt.Sprintf("%s\n\n%s\n\n%s", salutation, content, closing),
	}
}
