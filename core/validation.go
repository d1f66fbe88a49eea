package core

import (
	"fmt"
	"strings"
)

// field pairs a field name with its value for required-field checks.
type field struct {
	name  string
	value string
}

// ValidateJob validates a Job according to domain rules.
//
// Validation rules:
//   - Title, Company, Location and Description must not be blank
//
// NOT validated:
//   - ID (not used for lookups)
//   - Tags (not rendered)
func ValidateJob(job *Job, index int) error {
	if job == nil {
		return fmt.Errorf("%w: %s#%d is nil", ErrValidation, KindJob, index)
	}
	return requireFields(KindJob, index,
		field{"title", job.Title},
		field{"company", job.Company},
		field{"location", job.Location},
		field{"description", job.Description},
	)
}

// ValidateEvent validates an Event according to domain rules.
func ValidateEvent(event *Event, index int) error {
	if event == nil {
		return fmt.Errorf("%w: %s#%d is nil", ErrValidation, KindEvent, index)
	}
	return requireFields(KindEvent, index,
		field{"title", event.Title},
		field{"date", event.Date},
		field{"location", event.Location},
		field{"description", event.Description},
	)
}

// ValidateMentorship validates a MentorshipProgram according to domain rules.
func ValidateMentorship(program *MentorshipProgram, index int) error {
	if program == nil {
		return fmt.Errorf("%w: %s#%d is nil", ErrValidation, KindMentorship, index)
	}
	return requireFields(KindMentorship, index,
		field{"title", program.Title},
		field{"duration", program.Duration},
		field{"description", program.Description},
	)
}

// ValidateFAQ validates a FAQ according to domain rules.
func ValidateFAQ(faq *FAQ, index int) error {
	if faq == nil {
		return fmt.Errorf("%w: %s#%d is nil", ErrValidation, KindFAQ, index)
	}
	return requireFields(KindFAQ, index,
		field{"question", faq.Question},
		field{"answer", faq.Answer},
	)
}

// ValidateOrgInfo validates the organization description.
// Name is optional; Text must not be blank.
func ValidateOrgInfo(info *OrgInfo) error {
	if info == nil {
		return fmt.Errorf("%w: %s is nil", ErrValidation, KindInfo)
	}
	return requireFields(KindInfo, 0, field{"text", info.Text})
}

func requireFields(kind Kind, index int, fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s#%d %s: %w", ErrValidation, kind, index, f.name, ErrEmptyField)
		}
	}
	return nil
}
