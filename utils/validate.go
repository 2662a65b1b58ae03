package utils

import (
	"regexp"
	"strings"

	"github.com/nordbooks/leadtrack/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Free mailbox providers. The qualification form asks for a business email,
// so submissions from these domains are rejected.
var blockedEmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"yahoo.co.uk":    true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"aol.com":        true,
	"icloud.com":     true,
	"me.com":         true,
	"protonmail.com": true,
	"proton.me":      true,
	"gmx.com":        true,
	"mail.com":       true,
}

// ValidateLeadSubmission checks a contact-form payload and returns a list of
// human-readable problems, empty when the payload is acceptable.
func ValidateLeadSubmission(receiver models.LeadReceiver) []string {
	var errs []string

	if len(strings.TrimSpace(receiver.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}

	email := strings.TrimSpace(receiver.Email)
	if !emailRegex.MatchString(email) {
		errs = append(errs, "a valid email address is required")
	} else {
		at := strings.LastIndex(email, "@")
		domain := strings.ToLower(email[at+1:])
		if blockedEmailDomains[domain] {
			errs = append(errs, "please use your business email address")
		}
	}

	if strings.TrimSpace(receiver.Service) == "" {
		errs = append(errs, "service is required")
	}
	if strings.TrimSpace(receiver.Revenue) == "" {
		errs = append(errs, "revenue is required")
	}
	if strings.TrimSpace(receiver.Urgency) == "" {
		errs = append(errs, "urgency is required")
	}

	return errs
}
