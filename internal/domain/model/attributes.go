// Package model contains the value types shared by the simulation engines.
package model

import "fmt"

// Attribute bounds.
const (
	MinAttribute = 0
	MaxAttribute = 99

	// MinRating and MaxRating bound form and morale.
	MinRating     = 0
	MaxRating     = 100
	NeutralRating = 50
)

// AttributeKey names one of the ten player attributes.
type AttributeKey uint8

// Attribute keys in canonical order.
const (
	Speed       AttributeKey = iota // VE
	Stamina                         // RE
	Aggression                      // AG
	Quality                         // CA
	Finishing                       // REMATE
	Dribbling                       // REGATE
	Passing                         // PASE
	ShotPower                       // TIRO
	Tackling                        // ENTRADA
	Goalkeeping                     // PORTERO
)

// AllAttributes lists every key in canonical order.
var AllAttributes = []AttributeKey{ //nolint:gochecknoglobals // read-only table
	Speed, Stamina, Aggression, Quality, Finishing,
	Dribbling, Passing, ShotPower, Tackling, Goalkeeping,
}

var attributeCodes = [...]string{"VE", "RE", "AG", "CA", "REMATE", "REGATE", "PASE", "TIRO", "ENTRADA", "PORTERO"} //nolint:gochecknoglobals // read-only table

// String returns the short attribute code.
func (k AttributeKey) String() string {
	if int(k) < len(attributeCodes) {
		return attributeCodes[k]
	}
	return fmt.Sprintf("AttributeKey(%d)", uint8(k))
}

// Attributes holds a player's ten bounded attributes.
type Attributes struct {
	Speed       int `json:"ve"`
	Stamina     int `json:"re"`
	Aggression  int `json:"ag"`
	Quality     int `json:"ca"`
	Finishing   int `json:"remate"`
	Dribbling   int `json:"regate"`
	Passing     int `json:"pase"`
	ShotPower   int `json:"tiro"`
	Tackling    int `json:"entrada"`
	Goalkeeping int `json:"portero"`
}

// Uniform returns attributes with every value set to v (clamped).
func Uniform(v int) Attributes {
	v = ClampAttribute(v)
	return Attributes{
		Speed: v, Stamina: v, Aggression: v, Quality: v, Finishing: v,
		Dribbling: v, Passing: v, ShotPower: v, Tackling: v, Goalkeeping: v,
	}
}

// Get returns the value for key. Unknown keys yield 0.
func (a Attributes) Get(key AttributeKey) int {
	if p := a.ptr(key); p != nil {
		return *p
	}
	return 0
}

// With returns a copy of a with key set to v (clamped).
func (a Attributes) With(key AttributeKey, v int) Attributes {
	if p := a.ptr(key); p != nil {
		*p = ClampAttribute(v)
	}
	return a
}

// Add returns a copy of a with delta applied to key, clamped to [floor, MaxAttribute].
func (a Attributes) Add(key AttributeKey, delta, floor int) Attributes {
	if p := a.ptr(key); p != nil {
		*p = clampInt(*p+delta, floor, MaxAttribute)
	}
	return a
}

// Clamp returns a copy with every attribute forced into [MinAttribute, MaxAttribute].
func (a Attributes) Clamp() Attributes {
	for _, k := range AllAttributes {
		p := a.ptr(k)
		*p = ClampAttribute(*p)
	}
	return a
}

// Total sums every attribute.
func (a Attributes) Total() int {
	total := 0
	for _, k := range AllAttributes {
		total += a.Get(k)
	}
	return total
}

// ptr returns the field backing key, or nil for unknown keys.
func (a *Attributes) ptr(key AttributeKey) *int {
	switch key {
	case Speed:
		return &a.Speed
	case Stamina:
		return &a.Stamina
	case Aggression:
		return &a.Aggression
	case Quality:
		return &a.Quality
	case Finishing:
		return &a.Finishing
	case Dribbling:
		return &a.Dribbling
	case Passing:
		return &a.Passing
	case ShotPower:
		return &a.ShotPower
	case Tackling:
		return &a.Tackling
	case Goalkeeping:
		return &a.Goalkeeping
	default:
		return nil
	}
}

// ClampAttribute forces v into [MinAttribute, MaxAttribute].
func ClampAttribute(v int) int { return clampInt(v, MinAttribute, MaxAttribute) }

// ClampRating forces v into [MinRating, MaxRating].
func ClampRating(v int) int { return clampInt(v, MinRating, MaxRating) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
