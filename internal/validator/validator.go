package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"   // The definition cannot be built
	SeverityWarning Severity = "warning" // Legal, but probably unintended
)

// Finding is one problem detected in a definition.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report collects the findings for a single definition.
type Report struct {
	ID       string    `json:"id"`
	Findings []Finding `json:"findings"`
}

// OK reports whether the definition has no error findings.
func (r Report) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Err folds the error findings into a single error, or returns nil.
func (r Report) Err() error {
	var errs []string
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			errs = append(errs, f.Message)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: found %d errors:\n- %s", r.ID, len(errs), strings.Join(errs, "\n- "))
}

func (r *Report) add(sev Severity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Validate builds def and lints the result. Construction violations become
// errors; unreachable states, undefined (state, symbol) pairs and an empty
// accepting set become warnings.
func Validate(def domain.Definition) Report {
	report := Report{ID: def.ID, Findings: []Finding{}}

	a, err := dfa.FromDefinition(def)
	if err != nil {
		violations := domain.Violations(err)
		if len(violations) == 0 {
			violations = []error{err}
		}
		for _, v := range violations {
			report.add(SeverityError, "%v", v)
		}
		return report
	}

	for _, q := range a.Unreachable() {
		report.add(SeverityWarning, "state %q is unreachable from %q", q, a.Initial())
	}

	var missing []string
	for _, q := range a.States() {
		for _, symbol := range a.Alphabet() {
			if _, err := a.Delta(q, symbol); err != nil {
				missing = append(missing, fmt.Sprintf("(%s, %s)", q, symbol))
			}
		}
	}
	if len(missing) > 0 {
		report.add(SeverityWarning, "%d undefined transitions: %s", len(missing), strings.Join(missing, " "))
	}

	if len(a.Accepting()) == 0 {
		report.add(SeverityWarning, "no accepting states: every word is rejected")
	}

	return report
}

// ValidateAll validates every definition known to loader, in ID order.
// A definition that fails to load is reported as an error finding.
func ValidateAll(ctx context.Context, loader ports.DefinitionLoader) ([]Report, error) {
	ids, err := loader.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	reports := make([]Report, 0, len(ids))
	for _, id := range ids {
		def, err := loader.GetDefinition(ctx, id)
		if err != nil {
			r := Report{ID: id}
			r.add(SeverityError, "failed to load: %v", err)
			reports = append(reports, r)
			continue
		}
		r := Validate(*def)
		r.ID = id
		reports = append(reports, r)
	}
	return reports, nil
}
