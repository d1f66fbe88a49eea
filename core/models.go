package core

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// ContentHash is a deterministic 64-bit digest of text content.
type ContentHash uint64

// HashContent generates a deterministic hash from text content using BLAKE2b hashing.
// Identical content always produces identical hashes.
func HashContent(text string) ContentHash {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ContentHash(binary.LittleEndian.Uint64(sum))
}

// Kind identifies which record collection a knowledge unit came from.
type Kind int

const (
	// KindJob is a job posting.
	KindJob Kind = iota + 1
	// KindEvent is an upcoming event.
	KindEvent
	// KindMentorship is a mentorship program.
	KindMentorship
	// KindFAQ is a frequently asked question.
	KindFAQ
	// KindInfo is the organization description.
	KindInfo
)

// Kinds lists every kind in response priority order.
var Kinds = []Kind{KindJob, KindEvent, KindMentorship, KindFAQ, KindInfo}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindJob:
		return "job"
	case KindEvent:
		return "event"
	case KindMentorship:
		return "mentorship"
	case KindFAQ:
		return "faq"
	case KindInfo:
		return "info"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Job is a job posting.
type Job struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Company     string   `yaml:"company"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Event is a scheduled event.
type Event struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

// MentorshipProgram is a mentorship offering.
type MentorshipProgram struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Duration    string `yaml:"duration"`
	Description string `yaml:"description"`
}

// FAQ is a question with its canonical answer.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// OrgInfo describes the organization. There is exactly one per knowledge base.
type OrgInfo struct {
	Name string `yaml:"name,omitempty"`
	Text string `yaml:"text"`
}

// KnowledgeBase holds the raw record collections.
// UnitRef indices point into these slices.
type KnowledgeBase struct {
	Jobs        []Job               `yaml:"jobs"`
	Events      []Event             `yaml:"events"`
	Mentorships []MentorshipProgram `yaml:"mentorships"`
	FAQs        []FAQ               `yaml:"faqs"`
	Info        OrgInfo             `yaml:"info"`
}

// Clone returns a deep copy of kb. Nil slices stay nil.
func (kb *KnowledgeBase) Clone() *KnowledgeBase {
	if kb == nil {
		return nil
	}
	out := &KnowledgeBase{
		Jobs:        slices.Clone(kb.Jobs),
		Events:      slices.Clone(kb.Events),
		Mentorships: slices.Clone(kb.Mentorships),
		FAQs:        slices.Clone(kb.FAQs),
		Info:        kb.Info,
	}
	for i := range out.Jobs {
		out.Jobs[i].Tags = slices.Clone(out.Jobs[i].Tags)
	}
	return out
}

// UnitRef locates the source record of a knowledge unit: the kind and the
// position within that kind's slice of the KnowledgeBase. Info is always index 0.
type UnitRef struct {
	Kind  Kind
	Index int
}

// String returns "kind#index".
func (r UnitRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.Index)
}

// KnowledgeUnit is a normalized, indexable rendering of one record.
type KnowledgeUnit struct {
	Text string
	Ref  UnitRef
}

// Corpus is the ordered sequence of knowledge units. It is never mutated after build.
type Corpus []KnowledgeUnit

// Texts returns the unit texts in corpus order.
func (c Corpus) Texts() []string {
	texts := make([]string, len(c))
	for i, unit := range c {
		texts[i] = unit.Text
	}
	return texts
}

// Hit is a single nearest-neighbor result. UnitIndex is a position in the Corpus.
type Hit struct {
	UnitIndex int
	Distance  float32
}
