package model

// Tactic enumerations. Zero values fall back to the balanced setting.
const (
	StyleDefensive = 1
	StyleBalanced  = 2
	StyleAttacking = 3

	PressingLow  = 1
	PressingMid  = 2
	PressingHigh = 3

	MarkingZonal = 1
	MarkingMan   = 2

	ClearancesShort = 1
	ClearancesLong  = 2

	MaxFouls = 3
)

// Position is a squad role.
type Position uint8

// Positions. PositionUnknown is the zero value for players whose role is not tracked.
const (
	PositionUnknown Position = iota
	Goalkeeper
	Defender
	Midfielder
	Forward
)

var positionCodes = [...]string{"--", "PO", "DF", "MC", "DC"} //nolint:gochecknoglobals // read-only table

func (p Position) String() string {
	if int(p) < len(positionCodes) {
		return positionCodes[p]
	}
	return "--"
}

// PlayerSimAttrs is one roster entry fed to the match simulator.
//
// Form (estado de forma) and Morale are ratings in [0,100] where 50 is
// neutral. The zero value means 0, an unfit and demoralised player; build
// entries with NewPlayerSimAttrs to start from neutral.
type PlayerSimAttrs struct {
	PlayerID int
	Name     string
	Attrs    Attributes
	Form     int
	Morale   int
}

// NewPlayerSimAttrs returns a roster entry with neutral form and morale.
func NewPlayerSimAttrs(id int, name string, attrs Attributes) PlayerSimAttrs {
	return PlayerSimAttrs{
		PlayerID: id,
		Name:     name,
		Attrs:    attrs,
		Form:     NeutralRating,
		Morale:   NeutralRating,
	}
}

// Normalize returns a copy with attributes and ratings clamped to their domains.
func (p PlayerSimAttrs) Normalize() PlayerSimAttrs {
	p.Attrs = p.Attrs.Clamp()
	p.Form = ClampRating(p.Form)
	p.Morale = ClampRating(p.Morale)
	return p
}

// TacticParams is a side's tactical setup.
type TacticParams struct {
	PlayStyle   int  `json:"tipoJuego"`    // 1 defensive, 2 balanced, 3 attacking
	Marking     int  `json:"tipoMarcaje"`  // 1 zonal, 2 man
	Pressing    int  `json:"tipoPresion"`  // 1 low, 2 mid, 3 high
	Clearances  int  `json:"tipoDespejes"` // 1 short, 2 long
	Fouls       int  `json:"faltas"`       // 0 clean .. 3 hard
	CounterPct  int  `json:"porcContra"`   // 0..100
	TimeWasting bool `json:"perdidaTiempo"`
}

// DefaultTactic returns the balanced setup new squads start with.
func DefaultTactic() TacticParams {
	return TacticParams{
		PlayStyle:  StyleBalanced,
		Marking:    MarkingZonal,
		Pressing:   PressingMid,
		Clearances: ClearancesShort,
		Fouls:      2,
		CounterPct: 30,
	}
}

// FoulLevel returns Fouls clamped to [0, MaxFouls].
func (t TacticParams) FoulLevel() int { return clampInt(t.Fouls, 0, MaxFouls) }

// TeamMatchInput is everything the simulator needs about one side.
type TeamMatchInput struct {
	TeamID   int
	TeamName string
	// Squad is ordered goalkeeper first, then defenders, midfielders and forwards.
	Squad  []PlayerSimAttrs
	Tactic TacticParams
}

// NormalizedSquad returns a clamped copy of the squad.
func (t TeamMatchInput) NormalizedSquad() []PlayerSimAttrs {
	out := make([]PlayerSimAttrs, len(t.Squad))
	for i, p := range t.Squad {
		out[i] = p.Normalize()
	}
	return out
}
