package corpus

import (
	"fmt"
	"strings"

	"github.com/poiesic/asha/core"
)

// RenderJob renders a job posting as indexable text.
func RenderJob(job *core.Job) string {
	return strings.Join([]string{
		"Job Title: " + job.Title,
		"Company: " + job.Company,
		"Location: " + job.Location,
		"Description: " + job.Description,
	}, "\n")
}

// RenderEvent renders an event as indexable text.
func RenderEvent(event *core.Event) string {
	return strings.Join([]string{
		"Event: " + event.Title,
		"Date: " + event.Date,
		"Location: " + event.Location,
		"Description: " + event.Description,
	}, "\n")
}

// RenderMentorship renders a mentorship program as indexable text.
func RenderMentorship(program *core.MentorshipProgram) string {
	return strings.Join([]string{
		"Program: " + program.Title,
		"Duration: " + program.Duration,
		"Description: " + program.Description,
	}, "\n")
}

// RenderFAQ renders a question and answer pair as indexable text.
func RenderFAQ(faq *core.FAQ) string {
	return "Q: " + faq.Question + "\nA: " + faq.Answer
}

// RenderInfo renders the organization description with surrounding whitespace removed.
func RenderInfo(info *core.OrgInfo) string {
	return strings.TrimSpace(info.Text)
}

// Build converts a knowledge base into an ordered corpus.
//
// Units are emitted in a fixed order: every job, every event, every
// mentorship program, every FAQ, then the organization description.
// Within a kind the knowledge base order is preserved, so the same input
// always yields the same corpus.
//
// Any record with a blank required field fails the whole build and no
// partial corpus is returned.
func Build(kb *core.KnowledgeBase) (core.Corpus, error) {
	if kb == nil {
		return nil, ErrKnowledgeBaseRequired
	}

	size := len(kb.Jobs) + len(kb.Events) + len(kb.Mentorships) + len(kb.FAQs) + 1
	corpus := make(core.Corpus, 0, size)

	for i := range kb.Jobs {
		job := &kb.Jobs[i]
		if err := core.ValidateJob(job, i); err != nil {
			return nil, err
		}
		corpus = append(corpus, unit(RenderJob(job), core.KindJob, i))
	}

	for i := range kb.Events {
		event := &kb.Events[i]
		if err := core.ValidateEvent(event, i); err != nil {
			return nil, err
		}
		corpus = append(corpus, unit(RenderEvent(event), core.KindEvent, i))
	}

	for i := range kb.Mentorships {
		program := &kb.Mentorships[i]
		if err := core.ValidateMentorship(program, i); err != nil {
			return nil, err
		}
		corpus = append(corpus, unit(RenderMentorship(program), core.KindMentorship, i))
	}

	for i := range kb.FAQs {
		faq := &kb.FAQs[i]
		if err := core.ValidateFAQ(faq, i); err != nil {
			return nil, err
		}
		corpus = append(corpus, unit(RenderFAQ(faq), core.KindFAQ, i))
	}

	if err := core.ValidateOrgInfo(&kb.Info); err != nil {
		return nil, err
	}
	corpus = append(corpus, unit(RenderInfo(&kb.Info), core.KindInfo, 0))

	return corpus, nil
}

// Resolve returns the record a unit reference points at.
// The concrete type is one of *core.Job, *core.Event, *core.MentorshipProgram,
// *core.FAQ or *core.OrgInfo.
func Resolve(kb *core.KnowledgeBase, ref core.UnitRef) (any, error) {
	if kb == nil {
		return nil, ErrKnowledgeBaseRequired
	}
	outOfRange := func(n int) error {
		return fmt.Errorf("%w: %s (have %d)", ErrUnknownRef, ref, n)
	}
	switch ref.Kind {
	case core.KindJob:
		if ref.Index < 0 || ref.Index >= len(kb.Jobs) {
			return nil, outOfRange(len(kb.Jobs))
		}
		return &kb.Jobs[ref.Index], nil
	case core.KindEvent:
		if ref.Index < 0 || ref.Index >= len(kb.Events) {
			return nil, outOfRange(len(kb.Events))
		}
		return &kb.Events[ref.Index], nil
	case core.KindMentorship:
		if ref.Index < 0 || ref.Index >= len(kb.Mentorships) {
			return nil, outOfRange(len(kb.Mentorships))
		}
		return &kb.Mentorships[ref.Index], nil
	case core.KindFAQ:
		if ref.Index < 0 || ref.Index >= len(kb.FAQs) {
			return nil, outOfRange(len(kb.FAQs))
		}
		return &kb.FAQs[ref.Index], nil
	case core.KindInfo:
		if ref.Index != 0 {
			return nil, outOfRange(1)
		}
		return &kb.Info, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
}

func unit(text string, kind core.Kind, index int) core.KnowledgeUnit {
	return core.KnowledgeUnit{
		Text: text,
		Ref:  core.UnitRef{Kind: kind, Index: index},
	}
}
