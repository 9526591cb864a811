// Package development evolves squads between seasons and generates academy intakes.
//
// Both operations are pure functions of their inputs and seed. Callers own
// persistence and decide which rosters and teams to process.
package development

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/model"
)

// Status is a player's lifecycle state.
type Status uint8

// Player statuses.
const (
	StatusActive Status = iota
	StatusInjured
	StatusSuspended
	StatusRetired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusInjured:
		return "INJURED"
	case StatusSuspended:
		return "SUSPENDED"
	case StatusRetired:
		return "RETIRED"
	default:
		return "UNKNOWN"
	}
}

// DevelopmentPlayer is a squad member as seen by the season-end pass.
type DevelopmentPlayer struct {
	ID        int
	Name      string
	BirthYear int
	// Position is optional; goalkeepers are inferred from attributes when unknown.
	Position model.Position
	Attrs    model.Attributes
	Status   Status
}

// Age returns the player's age during the season starting in seasonStartYear.
func (p DevelopmentPlayer) Age(seasonStartYear int) int {
	if age := seasonStartYear - p.BirthYear; age > 0 {
		return age
	}
	return 0
}

// IsGoalkeeper reports whether the player trains as a goalkeeper.
func (p DevelopmentPlayer) IsGoalkeeper() bool {
	if p.Position != model.PositionUnknown {
		return p.Position == model.Goalkeeper
	}
	a := p.Attrs
	return a.Goalkeeping >= 40 && a.Goalkeeping > a.Finishing && a.Goalkeeping > a.Tackling
}

// TrainingIntensity is the season training load. The zero value is medium.
type TrainingIntensity uint8

// Training intensities.
const (
	IntensityMedium TrainingIntensity = iota
	IntensityLow
	IntensityHigh
)

func (t TrainingIntensity) String() string {
	switch t {
	case IntensityLow:
		return "LOW"
	case IntensityHigh:
		return "HIGH"
	default:
		return "MEDIUM"
	}
}

// ParseIntensity maps a stored name onto an intensity, defaulting to medium.
func ParseIntensity(s string) TrainingIntensity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return IntensityLow
	case "HIGH":
		return IntensityHigh
	default:
		return IntensityMedium
	}
}

// TrainingFocus selects which attributes training favours. The zero value is balanced.
type TrainingFocus uint8

// Training focus areas.
const (
	FocusBalanced TrainingFocus = iota
	FocusPhysical
	FocusDefensive
	FocusTechnical
	FocusAttacking
)

func (f TrainingFocus) String() string {
	switch f {
	case FocusPhysical:
		return "PHYSICAL"
	case FocusDefensive:
		return "DEFENSIVE"
	case FocusTechnical:
		return "TECHNICAL"
	case FocusAttacking:
		return "ATTACKING"
	default:
		return "BALANCED"
	}
}

// ParseFocus maps a stored name onto a focus, defaulting to balanced.
func ParseFocus(s string) TrainingFocus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PHYSICAL":
		return FocusPhysical
	case "DEFENSIVE":
		return FocusDefensive
	case "TECHNICAL":
		return FocusTechnical
	case "ATTACKING":
		return FocusAttacking
	default:
		return FocusBalanced
	}
}

// TrainingPlan is the club's training setup for a season.
type TrainingPlan struct {
	Intensity TrainingIntensity
	Focus     TrainingFocus
}

// StaffProfile holds staff quality ratings in [0,100].
type StaffProfile struct {
	AssistantCoach int // segundo entrenador
	Physio         int
	Psychologist   int
	Assistant      int
	Secretary      int
	Scout          int // ojeador
	Academy        int // juveniles
	Caretaker      int
}

// DefaultStaff returns average staff in every role.
func DefaultStaff() StaffProfile {
	return StaffProfile{
		AssistantCoach: model.NeutralRating,
		Physio:         model.NeutralRating,
		Psychologist:   model.NeutralRating,
		Assistant:      model.NeutralRating,
		Secretary:      model.NeutralRating,
		Scout:          model.NeutralRating,
		Academy:        model.NeutralRating,
		Caretaker:      model.NeutralRating,
	}
}

func (s StaffProfile) normalize() StaffProfile {
	s.AssistantCoach = model.ClampRating(s.AssistantCoach)
	s.Physio = model.ClampRating(s.Physio)
	s.Psychologist = model.ClampRating(s.Psychologist)
	s.Assistant = model.ClampRating(s.Assistant)
	s.Secretary = model.ClampRating(s.Secretary)
	s.Scout = model.ClampRating(s.Scout)
	s.Academy = model.ClampRating(s.Academy)
	s.Caretaker = model.ClampRating(s.Caretaker)
	return s
}

// DevelopmentContext bundles staff and training for one team's season-end pass.
type DevelopmentContext struct {
	Staff    StaffProfile
	Training TrainingPlan
}

// DefaultContext returns average staff with a medium, balanced plan.
func DefaultContext() DevelopmentContext {
	return DevelopmentContext{Staff: DefaultStaff()}
}

// YouthPlayer is a newly generated academy player.
type YouthPlayer struct {
	ID         uuid.UUID
	TeamSlotID int
	Name       string
	BirthYear  int
	Position   model.Position
	Attrs      model.Attributes
}
