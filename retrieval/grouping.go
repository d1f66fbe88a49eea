package retrieval

import (
	"fmt"

	"github.com/poiesic/asha/core"
)

// Grouping holds retrieved records partitioned by kind. Within each kind the
// records keep retrieval order (closest first). Records point into the
// knowledge base and must not be modified.
type Grouping struct {
	Jobs        []*core.Job
	Events      []*core.Event
	Mentorships []*core.MentorshipProgram
	FAQs        []*core.FAQ
	Info        *core.OrgInfo
}

// Empty reports whether no records were grouped.
func (g *Grouping) Empty() bool {
	return len(g.Jobs) == 0 && len(g.Events) == 0 && len(g.Mentorships) == 0 &&
		len(g.FAQs) == 0 && g.Info == nil
}

// Len returns the total number of grouped records.
func (g *Grouping) Len() int {
	n := len(g.Jobs) + len(g.Events) + len(g.Mentorships) + len(g.FAQs)
	if g.Info != nil {
		n++
	}
	return n
}

// Kinds returns the kinds present in the grouping in priority order.
func (g *Grouping) Kinds() []core.Kind {
	var kinds []core.Kind
	for _, kind := range core.Kinds {
		if g.count(kind) > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (g *Grouping) count(kind core.Kind) int {
	switch kind {
	case core.KindJob:
		return len(g.Jobs)
	case core.KindEvent:
		return len(g.Events)
	case core.KindMentorship:
		return len(g.Mentorships)
	case core.KindFAQ:
		return len(g.FAQs)
	case core.KindInfo:
		if g.Info != nil {
			return 1
		}
	}
	return 0
}

// add appends a resolved record to the matching kind.
func (g *Grouping) add(record any) error {
	switch r := record.(type) {
	case *core.Job:
		g.Jobs = append(g.Jobs, r)
	case *core.Event:
		g.Events = append(g.Events, r)
	case *core.MentorshipProgram:
		g.Mentorships = append(g.Mentorships, r)
	case *core.FAQ:
		g.FAQs = append(g.FAQs, r)
	case *core.OrgInfo:
		g.Info = r
	default:
		return fmt.Errorf("unexpected record type %T", record)
	}
	return nil
}
