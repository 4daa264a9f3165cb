package search

import (
	"strings"

	"github.com/jonathan/rolodex/internal/types"
)

// Result types
const (
	TypeContact  = "contact"
	TypeEvent    = "event"
	TypePipeline = "pipeline"
)

// Result is one row of the global search dialog.
type Result struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Relevance   int    `json:"relevance"`
}

// Contact adapts a contact for searching.
type Contact struct{ *types.Contact }

// SearchableFields implements Searchable.
func (c Contact) SearchableFields() []Field {
	return []Field{
		{Value: c.DisplayName(), Weight: contactNameWeight},
		{Value: deref(c.Email), Weight: contactEmailWeight},
		{Value: deref(c.Company), Weight: contactCompanyWeight},
		{Value: deref(c.JobTitle), Weight: contactTitleWeight},
		{Value: deref(c.ContactType), Weight: contactTypeWeight},
		{Value: deref(c.Notes), Weight: contactNotesWeight},
	}
}

// Result implements Searchable.
func (c Contact) Result(relevance int) Result {
	return Result{
		ID:          c.ID.String(),
		Type:        TypeContact,
		Title:       c.DisplayName(),
		Subtitle:    deref(c.Email),
		Description: joinNonEmpty(" at ", deref(c.JobTitle), deref(c.Company)),
		URL:         "/contacts/" + c.ID.String(),
		Relevance:   relevance,
	}
}

// Event adapts an event for searching.
type Event struct{ *types.Event }

// SearchableFields implements Searchable.
func (e Event) SearchableFields() []Field {
	return []Field{
		{Value: e.Name, Weight: eventNameWeight},
		{Value: deref(e.EventType), Weight: eventTypeWeight},
		{Value: deref(e.Location), Weight: eventLocationWeight},
		{Value: deref(e.Description), Weight: eventDescriptionWeight},
		{Value: deref(e.Status), Weight: eventStatusWeight},
	}
}

// Result implements Searchable.
func (e Event) Result(relevance int) Result {
	return Result{
		ID:          e.ID.String(),
		Type:        TypeEvent,
		Title:       e.Name,
		Subtitle:    joinNonEmpty(" · ", deref(e.EventType), deref(e.Location)),
		Description: deref(e.Description),
		URL:         "/events/" + e.ID.String(),
		Relevance:   relevance,
	}
}

// PipelineItem adapts a relationship pipeline item for searching.
type PipelineItem struct{ *types.PipelineItem }

// SearchableFields implements Searchable.
func (p PipelineItem) SearchableFields() []Field {
	return []Field{
		{Value: p.Contact.DisplayName(), Weight: pipelineContactWeight},
		{Value: p.Stage, Weight: pipelineStageWeight},
		{Value: deref(p.NextAction), Weight: pipelineNextActionWeight},
		{Value: deref(p.Contact.Company), Weight: pipelineCompanyWeight},
	}
}

// Result implements Searchable.
func (p PipelineItem) Result(relevance int) Result {
	return Result{
		ID:          p.ID.String(),
		Type:        TypePipeline,
		Title:       p.Contact.DisplayName(),
		Subtitle:    p.Stage,
		Description: deref(p.NextAction),
		URL:         "/pipeline/" + p.ID.String(),
		Relevance:   relevance,
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
