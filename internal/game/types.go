package game

import "fmt"

// Category is the card category printed on every card.
type Category int

const (
	CategoryStar Category = iota
	CategoryDiscovery
	CategoryFlare
	CategoryFracture
	CategoryOmen
)

func (c Category) String() string {
	switch c {
	case CategoryStar:
		return "Star"
	case CategoryDiscovery:
		return "Discovery"
	case CategoryFlare:
		return "Flare"
	case CategoryFracture:
		return "Fracture"
	case CategoryOmen:
		return "Omen"
	default:
		return "Unknown"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Star":
		*c = CategoryStar
	case "Discovery":
		*c = CategoryDiscovery
	case "Flare":
		*c = CategoryFlare
	case "Fracture":
		*c = CategoryFracture
	case "Omen":
		*c = CategoryOmen
	default:
		return fmt.Errorf("unknown category %q", b)
	}
	return nil
}

// ChainBound reports whether cards of this category resolve through the chain.
func (c Category) ChainBound() bool {
	return c == CategoryFlare || c == CategoryFracture || c == CategoryOmen
}

// Phase represents the game phase.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseAction
	PhaseReaction
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseAction:
		return "Action"
	case PhaseReaction:
		return "Reaction"
	default:
		return "Unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Setup":
		*p = PhaseSetup
	case "Action":
		*p = PhaseAction
	case "Reaction":
		*p = PhaseReaction
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// Effect identifies a card behavior. Every card definition carries exactly one,
// and the interpreter switches over all of them.
type Effect int

const (
	EffectNone Effect = iota
	EffectProtoStar
	EffectCosmicDenial
	EffectSolarEclipse
	EffectPlanetOfLife
	EffectAthena
	EffectIgnition
	EffectStellarAlignment
	EffectWormhole
	EffectAstralProjection
	EffectBlackHole
	EffectPulsar
	EffectDarkMatterVoid
	EffectQuantumEntanglement
	EffectNurseryCollapse
	EffectSupernova
)

var effectKeys = [...]string{
	EffectNone:                "none",
	EffectProtoStar:           "proto_star",
	EffectCosmicDenial:        "cosmic_denial",
	EffectSolarEclipse:        "solar_eclipse",
	EffectPlanetOfLife:        "planet_of_life",
	EffectAthena:              "athena",
	EffectIgnition:            "ignition",
	EffectStellarAlignment:    "stellar_alignment",
	EffectWormhole:            "wormhole",
	EffectAstralProjection:    "astral_projection",
	EffectBlackHole:           "black_hole",
	EffectPulsar:              "pulsar",
	EffectDarkMatterVoid:      "dark_matter_void",
	EffectQuantumEntanglement: "quantum_entanglement",
	EffectNurseryCollapse:     "nursery_collapse",
	EffectSupernova:           "supernova",
}

func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectKeys) {
		return fmt.Sprintf("Effect(%d)", int(e))
	}
	return effectKeys[e]
}

func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Effect) UnmarshalText(b []byte) error {
	for i, k := range effectKeys {
		if k == string(b) {
			*e = Effect(i)
			return nil
		}
	}
	return fmt.Errorf("unknown effect %q", b)
}

// NeedsTarget reports whether a card with this effect cannot be played
// without naming a target.
func (e Effect) NeedsTarget() bool {
	switch e {
	case EffectSolarEclipse, EffectPlanetOfLife, EffectAthena, EffectIgnition:
		return true
	}
	return false
}

// Attachable reports whether a non-Discovery card with this effect may sit in a
// Star's attachment list.
func (e Effect) Attachable() bool {
	return e == EffectSolarEclipse || e == EffectPlanetOfLife
}

// DecisionKind discriminates the outstanding decision.
type DecisionKind string

const (
	DecisionCompleteSystem    DecisionKind = "offer_complete_system"
	DecisionProtoStar         DecisionKind = "proto_star_choice"
	DecisionVoidClass         DecisionKind = "select_void_class"
	DecisionDestructionTarget DecisionKind = "select_destruction_target"
)

// ProtoChoice is the branch picked for a Proto-Star.
type ProtoChoice string

const (
	ProtoDraw   ProtoChoice = "draw"
	ProtoSearch ProtoChoice = "search"
)

// StepKind tells the caller which chain stage a Step performed.
type StepKind int

const (
	StepNone StepKind = iota
	StepReveal
	StepResolve
	StepDrain
)

func (k StepKind) String() string {
	switch k {
	case StepNone:
		return "None"
	case StepReveal:
		return "Reveal"
	case StepResolve:
		return "Resolve"
	case StepDrain:
		return "Drain"
	default:
		return "Unknown"
	}
}

// Card names the rules refer to directly.
const (
	NameWhiteDwarf  = "White Dwarf"
	NameYellowDwarf = "Yellow Dwarf"
	NameGasGiant    = "Gas Giant"
	NameRockyPlanet = "Rocky Planet"
)

const (
	InitialHandSize = 5
	MaxHandSize     = 5
	SystemsToWin    = 3
	MillCount       = 5
	RevealTurns     = 2
	BlackHoleSkip   = 3
)

// VoidClasses are the classes Dark Matter Void may ban.
var VoidClasses = []int{2, 3, 4, 5, 6}
