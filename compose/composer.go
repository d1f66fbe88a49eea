package compose

import (
	"fmt"
	"strings"

	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/retrieval"
)

// Defaults for the persona and organization names.
const (
	DefaultAssistantName = "Asha"
	DefaultPlatform      = "JobsForHer"
	DefaultOrganization  = "JobsForHer Foundation"
)

// Section headers.
const (
	jobsHeader       = "I found some job opportunities that might interest you:"
	eventsHeader     = "Here are some upcoming events:"
	mentorshipHeader = "Here are mentorship programs you might be interested in:"
)

// Composer renders retrieval results as reply text.
// Output depends only on its input; a Composer is safe for concurrent use.
type Composer struct {
	assistant    string
	platform     string
	organization string
}

// Option configures a Composer.
type Option func(*Composer)

// WithAssistantName sets the persona name used in the introduction.
func WithAssistantName(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.assistant = name
		}
	}
}

// WithPlatform sets the product name the assistant introduces itself for.
func WithPlatform(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.platform = name
		}
	}
}

// WithOrganization sets the name used in the "About" header when the
// knowledge base does not name the organization.
func WithOrganization(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.organization = name
		}
	}
}

// New creates a composer.
func New(opts ...Option) *Composer {
	c := &Composer{
		assistant:    DefaultAssistantName,
		platform:     DefaultPlatform,
		organization: DefaultOrganization,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders a retrieval result.
//
// A direct answer is returned verbatim. Otherwise one section is emitted per
// kind present, in the order jobs, events, mentorship programs, FAQs, then
// the organization description. Lines within a section are separated by a
// newline and sections by a blank line. An empty result yields the
// introduction.
func (c *Composer) Compose(result *retrieval.Result) string {
	if result == nil {
		return c.Fallback()
	}
	if result.IsDirect() {
		return result.Direct
	}

	g := &result.Grouping
	var sections []string

	if len(g.Jobs) > 0 {
		lines := []string{jobsHeader}
		for _, job := range g.Jobs {
			lines = append(lines, fmt.Sprintf("- %s at %s (%s): %s", job.Title, job.Company, job.Location, job.Description))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(g.Events) > 0 {
		lines := []string{eventsHeader}
		for _, event := range g.Events {
			lines = append(lines, fmt.Sprintf("- %s on %s in %s: %s", event.Title, event.Date, event.Location, event.Description))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(g.Mentorships) > 0 {
		lines := []string{mentorshipHeader}
		for _, program := range g.Mentorships {
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", program.Title, program.Duration, program.Description))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	// FAQs have no header; each pair stands alone
	for _, faq := range g.FAQs {
		sections = append(sections, fmt.Sprintf("Q: %s\nA: %s", faq.Question, faq.Answer))
	}

	if g.Info != nil {
		sections = append(sections, c.about(g.Info))
	}

	if len(sections) == 0 {
		return c.Fallback()
	}
	return strings.Join(sections, "\n\n")
}

func (c *Composer) about(info *core.OrgInfo) string {
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = c.organization
	}
	return fmt.Sprintf("About %s:\n\n%s", name, strings.TrimSpace(info.Text))
}

// Fallback returns the introduction used when nothing relevant was found.
func (c *Composer) Fallback() string {
	return fmt.Sprintf("I'm %s, your virtual assistant for %s. I can help you with finding job opportunities, mentorship programs, upcoming events, and more. Could you provide more details about what you're looking for?",
		c.assistant, c.platform)
}

// Apology returns the message shown when a query could not be answered
// because of a transient failure.
func (c *Composer) Apology() string {
	return "I'm sorry, I'm having trouble looking that up right now. Please try again in a moment."
}

// Welcome returns the greeting shown when a conversation starts.
func (c *Composer) Welcome() string {
	return fmt.Sprintf(`Welcome to %s AI

I'm your virtual assistant for %s. I can help you with:

* Finding job opportunities
* Learning about mentorship programs
* Discovering upcoming events
* Answering questions about profile setup
* Providing career guidance for women professionals

How can I assist you today?`, c.assistant, c.organization)
}
