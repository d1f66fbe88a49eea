package compose

import (
	"strings"
	"testing"

	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/kb"
	"github.com/poiesic/asha/retrieval"
	"github.com/stretchr/testify/assert"
)

const fallback = "I'm Asha, your virtual assistant for JobsForHer. I can help you with finding job opportunities, mentorship programs, upcoming events, and more. Could you provide more details about what you're looking for?"

func TestCompose_Direct(t *testing.T) {
	c := New()
	out := c.Compose(&retrieval.Result{Direct: "canned answer"})
	assert.Equal(t, "canned answer", out)
}

func TestCompose_Fallback(t *testing.T) {
	c := New()
	assert.Equal(t, fallback, c.Compose(&retrieval.Result{}))
	assert.Equal(t, fallback, c.Compose(nil))
	assert.Equal(t, fallback, c.Fallback())
}

func TestCompose_Sections(t *testing.T) {
	data := kb.Default()
	c := New()

	t.Run("single job", func(t *testing.T) {
		result := &retrieval.Result{Grouping: retrieval.Grouping{Jobs: []*core.Job{&data.Jobs[1]}}}
		assert.Equal(t,
			"I found some job opportunities that might interest you:\n- Data Analyst at DataInsights (Bangalore): Analyze business data and create dashboards.",
			c.Compose(result))
	})

	t.Run("all kinds in priority order", func(t *testing.T) {
		// Grouping fields are filled in an order unrelated to output order
		result := &retrieval.Result{Grouping: retrieval.Grouping{
			Info:        &data.Info,
			FAQs:        []*core.FAQ{&data.FAQs[2], &data.FAQs[0]},
			Mentorships: []*core.MentorshipProgram{&data.Mentorships[1]},
			Events:      []*core.Event{&data.Events[2]},
			Jobs:        []*core.Job{&data.Jobs[3], &data.Jobs[0]},
		}}

		want := strings.Join([]string{
			"I found some job opportunities that might interest you:\n" +
				"- Marketing Specialist at GrowthMedia (Mumbai): Create marketing campaigns for women empowerment initiatives.\n" +
				"- Software Engineer at TechCorp (Remote): Software engineering role focused on frontend development.",
			"Here are some upcoming events:\n" +
				"- Networking Mixer on 2025-06-25 in Delhi: Connect with women professionals across industries.",
			"Here are mentorship programs you might be interested in:\n" +
				"- Career Comeback Program (2 months): Support for women returning to work after a career break.",
			"Q: What is the mentorship program?\nA: Our mentorship programs connect you with experienced professionals who can guide your career growth in specific areas.",
			"Q: How do I update my profile?\nA: Log in to your JobsForHer account, click on your profile picture, select 'Edit Profile', and update your information.",
			"About JobsForHer Foundation:\n\n" + strings.TrimSpace(data.Info.Text),
		}, "\n\n")

		assert.Equal(t, want, c.Compose(result))
	})

	t.Run("info without name uses organization option", func(t *testing.T) {
		result := &retrieval.Result{Grouping: retrieval.Grouping{Info: &core.OrgInfo{Text: "  We help.\n"}}}
		assert.Equal(t, "About JobsForHer Foundation:\n\nWe help.", c.Compose(result))

		custom := New(WithOrganization("Acme Trust"))
		assert.Equal(t, "About Acme Trust:\n\nWe help.", custom.Compose(result))
	})

	t.Run("deterministic", func(t *testing.T) {
		result := &retrieval.Result{Grouping: retrieval.Grouping{
			Events: []*core.Event{&data.Events[0]},
			Info:   &data.Info,
		}}
		assert.Equal(t, c.Compose(result), c.Compose(result))
	})
}

func TestOptions(t *testing.T) {
	c := New(WithAssistantName("Mira"), WithPlatform("CareerHub"), WithAssistantName(""))
	assert.True(t, strings.HasPrefix(c.Fallback(), "I'm Mira, your virtual assistant for CareerHub."))
	assert.Contains(t, c.Welcome(), "Welcome to Mira AI")
	assert.NotEmpty(t, c.Apology())
	assert.NotEqual(t, c.Apology(), c.Fallback())
}
