// Package wizard models the three-step custom order form: design, optional measurements, review.
package wizard

import (
	"strings"

	"github.com/shopspring/decimal"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/checkout"
	"tailoringStorefront/models"
)

type Step int

const (
	StepDesign       Step = 1
	StepMeasurements Step = 2
	StepReview       Step = 3
)

// MeasurementKeys are the body measurements the form collects, in inches.
var MeasurementKeys = []string{"chest", "waist", "hips", "shoulder", "sleeve", "length"}

// DesignChoice is the outcome of the design step.
type DesignChoice struct {
	DesignID            string            `json:"designId"`
	DesignTitle         string            `json:"designTitle"`
	Category            string            `json:"category,omitempty"`
	Customizations      map[string]string `json:"customizations,omitempty"`
	BasePrice           decimal.Decimal   `json:"basePrice"`
	IncludeMeasurements bool              `json:"includeMeasurements"`
}

// State is the per-session progress through the form. The zero value starts at the design step.
type State struct {
	Step         Step                `json:"step"`
	Design       *DesignChoice       `json:"design,omitempty"`
	Measurements models.Measurements `json:"measurements,omitempty"`
}

func (s *State) current() Step {
	if s.Step < StepDesign || s.Step > StepReview {
		return StepDesign
	}
	return s.Step
}

// Current returns the step the customer is on.
func (s *State) Current() Step { return s.current() }

// ChooseDesign records the design and advances to measurements, or straight to review
// when the customer skips them. Choosing again from a later step restarts from the new design.
func (s *State) ChooseDesign(c DesignChoice) error {
	c.DesignID = strings.TrimSpace(c.DesignID)
	c.DesignTitle = strings.TrimSpace(c.DesignTitle)
	if c.DesignID == "" && c.DesignTitle == "" {
		return apperr.Validation("designId or designTitle is required")
	}
	if !c.BasePrice.IsPositive() {
		return apperr.Validation("basePrice must be positive")
	}
	s.Design = &c
	if !c.IncludeMeasurements {
		s.Measurements = nil
		s.Step = StepReview
		return nil
	}
	s.Step = StepMeasurements
	return nil
}

// SetMeasurements stores the measurements and moves to review.
func (s *State) SetMeasurements(m models.Measurements) error {
	if s.current() != StepMeasurements {
		return apperr.Precondition("measurements are entered on step %d, current step is %d", StepMeasurements, s.current())
	}
	clean := models.Measurements{}
	for k, v := range m {
		k = strings.ToLower(strings.TrimSpace(k))
		if !knownKey(k) {
			return apperr.Validation("unknown measurement %q", k)
		}
		if v = strings.TrimSpace(v); v != "" {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return apperr.Validation("at least one measurement is required")
	}
	s.Measurements = clean
	s.Step = StepReview
	return nil
}

// Back moves one step back. From review it returns to the design step when measurements were skipped.
func (s *State) Back() Step {
	switch s.current() {
	case StepReview:
		if s.Design != nil && s.Design.IncludeMeasurements {
			s.Step = StepMeasurements
		} else {
			s.Step = StepDesign
		}
	case StepMeasurements:
		s.Step = StepDesign
	default:
		s.Step = StepDesign
	}
	return s.Step
}

// Submit turns the reviewed form into a checkout submission.
func (s *State) Submit(contact checkout.Contact, method models.PaymentMethod) (checkout.Submission, error) {
	if s.current() != StepReview || s.Design == nil {
		return checkout.Submission{}, apperr.Precondition("order form is not complete")
	}
	sub := checkout.Submission{
		Contact:             contact,
		DesignID:            s.Design.DesignID,
		DesignTitle:         s.Design.DesignTitle,
		BasePrice:           s.Design.BasePrice,
		IncludeMeasurements: s.Design.IncludeMeasurements,
		PaymentMethod:       method,
	}
	if sub.IncludeMeasurements {
		sub.Measurements = s.Measurements
	}
	return sub, sub.Validate()
}

// Reset returns the form to the design step.
func (s *State) Reset() {
	*s = State{Step: StepDesign}
}

func knownKey(k string) bool {
	for _, key := range MeasurementKeys {
		if key == k {
			return true
		}
	}
	return false
}
