package validation

import (
	"strings"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

const (
	taskTitleRule       = "required,max=200"
	taskDescriptionRule = "required"
	taskPriorityRule    = "oneof=low medium high"
	taskStatusRule      = "oneof=pending in_progress completed cancelled"
)

type taskSchema struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"oneof=low medium high"`
	Status      string `json:"status" validate:"oneof=pending in_progress completed cancelled"`
}

// NewTask validates a task at instant now. Priority and status are
// lower-cased before the enum check; the due date must be strictly after now.
func (v *Validator) NewTask(in ports.NewTaskInput, now time.Time) (*domain.Task, error) {
	s := taskSchema{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Priority:    normalizeEnum(in.Priority),
		Status:      normalizeEnum(in.Status),
	}
	if s.Priority == "" {
		s.Priority = string(domain.PriorityMedium)
	}
	if s.Status == "" {
		s.Status = string(domain.TaskPending)
	}

	var r reasons
	v.structRules(s, &r)
	if in.DueDate != nil && !in.DueDate.After(now) {
		r.add("due date must be in the future")
	}
	if err := r.err(); err != nil {
		return nil, err
	}

	t := &domain.Task{
		Title:       s.Title,
		Description: s.Description,
		Priority:    domain.TaskPriority(s.Priority),
		Status:      domain.TaskStatus(s.Status),
		SessionID:   strings.TrimSpace(in.SessionID),
		DocumentRef: strings.TrimSpace(in.DocumentRef),
	}
	if in.DueDate != nil {
		due := in.DueDate.UTC()
		t.DueDate = &due
	}
	return t, nil
}

// TaskPatch validates supplied fields. The due date is not re-checked
// against the clock.
func (v *Validator) TaskPatch(p ports.TaskPatch) (ports.TaskPatch, error) {
	var r reasons
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		v.fieldRule("title", title, taskTitleRule, &r)
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		v.fieldRule("description", desc, taskDescriptionRule, &r)
		p.Description = &desc
	}
	if p.Priority != nil {
		priority := normalizeEnum(*p.Priority)
		v.fieldRule("priority", priority, taskPriorityRule, &r)
		p.Priority = &priority
	}
	if p.Status != nil {
		status := normalizeEnum(*p.Status)
		v.fieldRule("status", status, taskStatusRule, &r)
		p.Status = &status
	}
	if p.SessionID != nil {
		sessionID := strings.TrimSpace(*p.SessionID)
		p.SessionID = &sessionID
	}
	if p.DocumentRef != nil {
		ref := strings.TrimSpace(*p.DocumentRef)
		p.DocumentRef = &ref
	}
	if p.DueDate != nil {
		due := p.DueDate.UTC()
		p.DueDate = &due
	}
	return p, r.err()
}
