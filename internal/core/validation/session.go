package validation

import (
	"strings"
	"time"

	"github.com/studytrack/tracker/internal/core/domain"
	"github.com/studytrack/tracker/internal/core/ports"
)

const (
	sessionNameRule   = "required,max=200"
	sessionStatusRule = "oneof=pending in_progress completed cancelled"
)

type sessionSchema struct {
	Name   string `json:"name" validate:"required,max=200"`
	Status string `json:"status" validate:"oneof=pending in_progress completed cancelled"`
}

// NewSession validates a session at instant now. A zero start time becomes now.
func (v *Validator) NewSession(in ports.NewSessionInput, now time.Time) (*domain.Session, error) {
	s := sessionSchema{
		Name:   strings.TrimSpace(in.Name),
		Status: strings.TrimSpace(in.Status),
	}
	if s.Status == "" {
		s.Status = string(domain.SessionPending)
	}
	start := in.StartTime
	if start.IsZero() {
		start = now
	}

	var r reasons
	v.structRules(s, &r)
	switch {
	case in.EndTime.IsZero():
		r.add("end_time is required")
	case !in.EndTime.After(start):
		r.add("end time must be after start time")
	}
	if err := r.err(); err != nil {
		return nil, err
	}

	return &domain.Session{
		Name:      s.Name,
		StartTime: start.UTC(),
		EndTime:   in.EndTime.UTC(),
		Status:    domain.SessionStatus(s.Status),
	}, nil
}

// SessionPatch validates supplied fields. Start/end ordering is only checked
// when both are supplied together.
func (v *Validator) SessionPatch(p ports.SessionPatch) (ports.SessionPatch, error) {
	var r reasons
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		v.fieldRule("name", name, sessionNameRule, &r)
		p.Name = &name
	}
	if p.Status != nil {
		status := strings.TrimSpace(*p.Status)
		v.fieldRule("status", status, sessionStatusRule, &r)
		p.Status = &status
	}
	if p.StartTime != nil && p.EndTime != nil && !p.EndTime.After(*p.StartTime) {
		r.add("end time must be after start time")
	}
	return p, r.err()
}
