package vaccination

import (
	"context"
	"fmt"

	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

var ErrBusinessRule = sentinel.ErrBusinessRule

// Rule identifica qué regla de secuencia rechazó la dosis.
type Rule string

const (
	RuleNotApplicable            Rule = "not_applicable"
	RuleDuplicate                Rule = "duplicate"
	RuleMissingPrerequisite      Rule = "missing_prerequisite"
	RuleUndefinedPrimarySchedule Rule = "undefined_primary_schedule"
)

// RuleViolation es un rechazo de negocio; Message se devuelve tal cual al cliente.
type RuleViolation struct {
	Rule    Rule
	Message string
}

func (e *RuleViolation) Error() string { return e.Message }

func (e *RuleViolation) Is(target error) bool { return target == ErrBusinessRule }

func violation(rule Rule, format string, args ...any) *RuleViolation {
	return &RuleViolation{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// RecordLookup es lo único que el validador necesita del almacenamiento.
type RecordLookup interface {
	Exists(ctx context.Context, personID, vaccineID string, dose vaccines.DoseKind) (bool, error)
}

// ValidateDose decide si la dosis puede registrarse. Corta en la primera
// regla que falla; los errores del lookup se devuelven sin envolver.
func ValidateDose(ctx context.Context, lookup RecordLookup, personID string, v vaccines.Vaccine, dose vaccines.DoseKind) error {
	if !v.Applies(dose) {
		return violation(RuleNotApplicable,
			"The requested dose: %s is not applicable for the vaccine: %s.", dose.Label(), v.Name)
	}

	taken, err := lookup.Exists(ctx, personID, v.ID, dose)
	if err != nil {
		return err
	}
	if taken {
		return violation(RuleDuplicate, "%s already recorded for this person.", dose.Label())
	}

	required, err := prerequisite(v, dose)
	if err != nil || required == "" {
		return err
	}

	ok, err := lookup.Exists(ctx, personID, v.ID, required)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if dose.BoosterRank() > 0 {
		return violation(RuleMissingPrerequisite,
			"%s is required before registering a booster dose.", required.Label())
	}
	return violation(RuleMissingPrerequisite,
		"%s is required before registering the %s.", required.Label(), dose.Label())
}

// prerequisite devuelve la dosis que debe existir antes de dose; "" si ninguna.
// THIRD exige SECOND aunque SECOND no esté en el esquema.
func prerequisite(v vaccines.Vaccine, dose vaccines.DoseKind) (vaccines.DoseKind, error) {
	switch dose {
	case vaccines.DoseSecond:
		return vaccines.DoseFirst, nil
	case vaccines.DoseThird:
		return vaccines.DoseSecond, nil
	case vaccines.DoseFirstBooster, vaccines.DoseSecondBooster:
		last, ok := vaccines.LastPrimaryDose(v.Schedule)
		if !ok {
			return "", violation(RuleUndefinedPrimarySchedule,
				"Unable to register the booster: primary dose schedule not defined for this vaccine.")
		}
		return last, nil
	default:
		return "", nil
	}
}
