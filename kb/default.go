package kb

import "github.com/poiesic/asha/core"

// DefaultOrganization is the organization the built-in dataset describes.
const DefaultOrganization = "JobsForHer Foundation"

const foundationText = `
JobsForHer Foundation is dedicated to empowering women in their professional careers through job opportunities, 
mentorship, networking events, and skill development. Our platform connects women with employers committed to 
diversity and inclusion, providing resources to help women advance in their careers or return to the workforce 
after a break. We offer job listings across various industries, mentorship programs, career advice, and 
community events designed specifically for women professionals.
`

// Default returns the built-in JobsForHer knowledge base.
// Each call returns a fresh copy that the caller may modify.
func Default() *core.KnowledgeBase {
	return &core.KnowledgeBase{
		Jobs: []core.Job{
			{
				ID:          1,
				Title:       "Software Engineer",
				Company:     "TechCorp",
				Location:    "Remote",
				Description: "Software engineering role focused on frontend development.",
				Tags:        []string{"tech", "coding", "frontend"},
			},
			{
				ID:          2,
				Title:       "Data Analyst",
				Company:     "DataInsights",
				Location:    "Bangalore",
				Description: "Analyze business data and create dashboards.",
				Tags:        []string{"data", "analytics", "sql"},
			},
			{
				ID:          3,
				Title:       "Product Manager",
				Company:     "InnovateCo",
				Location:    "Hybrid",
				Description: "Lead product development initiatives for women-focused tech products.",
				Tags:        []string{"product", "leadership"},
			},
			{
				ID:          4,
				Title:       "Marketing Specialist",
				Company:     "GrowthMedia",
				Location:    "Mumbai",
				Description: "Create marketing campaigns for women empowerment initiatives.",
				Tags:        []string{"marketing", "social media"},
			},
		},
		Events: []core.Event{
			{
				ID:          1,
				Title:       "Women in Tech Conference",
				Date:        "2025-06-15",
				Location:    "Virtual",
				Description: "Annual conference showcasing women leaders in technology.",
			},
			{
				ID:          2,
				Title:       "Resume Building Workshop",
				Date:        "2025-06-20",
				Location:    "Bangalore",
				Description: "Learn how to create effective resumes for tech industry roles.",
			},
			{
				ID:          3,
				Title:       "Networking Mixer",
				Date:        "2025-06-25",
				Location:    "Delhi",
				Description: "Connect with women professionals across industries.",
			},
		},
		Mentorships: []core.MentorshipProgram{
			{
				ID:          1,
				Title:       "Tech Leadership Program",
				Duration:    "3 months",
				Description: "Mentorship for women aspiring to leadership roles in tech.",
			},
			{
				ID:          2,
				Title:       "Career Comeback Program",
				Duration:    "2 months",
				Description: "Support for women returning to work after a career break.",
			},
			{
				ID:          3,
				Title:       "Entrepreneurship Guidance",
				Duration:    "6 months",
				Description: "Mentorship for women starting their own businesses.",
			},
		},
		FAQs: []core.FAQ{
			{
				Question: "How do I update my profile?",
				Answer:   "Log in to your JobsForHer account, click on your profile picture, select 'Edit Profile', and update your information.",
			},
			{
				Question: "How can I apply for jobs?",
				Answer:   "Browse job listings, click on a job you're interested in, and click the 'Apply' button. You'll need to complete your profile first.",
			},
			{
				Question: "What is the mentorship program?",
				Answer:   "Our mentorship programs connect you with experienced professionals who can guide your career growth in specific areas.",
			},
			{
				Question: "How do I sign up for events?",
				Answer:   "Browse our events section, select an event, and click 'Register'. You'll receive a confirmation email with details.",
			},
		},
		Info: core.OrgInfo{
			Name: DefaultOrganization,
			Text: foundationText,
		},
	}
}
