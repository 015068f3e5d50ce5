package frontend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayanpandit/PrepTera/internal/model/catalog"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
)

var (
	ErrIncomplete = errors.New("candidate name, job role, domain and interview type are required")
	ErrUnknown    = errors.New("option is not offered")
)

// SetupForm collects the interview configuration. Choosing a role resets the
// domain, since domains are offered per role.
type SetupForm struct {
	catalog catalog.Catalog

	candidateName string
	jobRole       string
	domain        string
	interviewType string
}

// NewSetupForm creates an empty form over c.
func NewSetupForm(c catalog.Catalog) *SetupForm {
	return &SetupForm{catalog: c}
}

// Catalog returns the options the form offers.
func (f *SetupForm) Catalog() catalog.Catalog {
	return f.catalog
}

// SetCandidateName records the free-text name.
func (f *SetupForm) SetCandidateName(name string) {
	f.candidateName = strings.TrimSpace(name)
}

// SelectJobRole picks a role from the catalog and clears the domain.
func (f *SetupForm) SelectJobRole(role string) error {
	if _, ok := f.catalog.FindRole(role); !ok {
		return fmt.Errorf("job role %q: %w", role, ErrUnknown)
	}
	f.jobRole = role
	f.domain = ""
	return nil
}

// Domains lists the domains offered for the selected role.
func (f *SetupForm) Domains() []string {
	r, ok := f.catalog.FindRole(f.jobRole)
	if !ok {
		return nil
	}
	return append([]string(nil), r.Domains...)
}

// SelectDomain picks a domain belonging to the selected role.
func (f *SetupForm) SelectDomain(domain string) error {
	if !f.catalog.HasDomain(f.jobRole, domain) {
		return fmt.Errorf("domain %q for role %q: %w", domain, f.jobRole, ErrUnknown)
	}
	f.domain = domain
	return nil
}

// SelectInterviewType picks Technical or Behavioral.
func (f *SetupForm) SelectInterviewType(name string) error {
	if !f.catalog.HasInterviewType(name) {
		return fmt.Errorf("interview type %q: %w", name, ErrUnknown)
	}
	f.interviewType = name
	return nil
}

// Ready reports whether all four fields are filled in.
func (f *SetupForm) Ready() bool {
	return f.candidateName != "" && f.jobRole != "" && f.domain != "" && f.interviewType != ""
}

// Config returns the interview configuration once the form is ready.
func (f *SetupForm) Config() (interview.StartRequest, error) {
	if !f.Ready() {
		return interview.StartRequest{}, ErrIncomplete
	}
	return interview.StartRequest{
		CandidateName: f.candidateName,
		JobRole:       f.jobRole,
		Domain:        f.domain,
		InterviewType: f.interviewType,
	}, nil
}
