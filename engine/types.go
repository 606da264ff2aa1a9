package engine

// Suit constants. Wizards and Jesters carry a suit only so that the deck
// holds 60 distinct cards; the suit has no gameplay meaning for them.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants. Numeric ranks are 1–13; the two special ranks bracket them.
const (
	RankJester uint8 = 0
	RankWizard uint8 = 14
)

// Card is its own wire encoding: a uint8 index into the 60-slot card space.
//
//	0–51:  numeric cards, suit*13 + (rank-1)
//	52–55: Wizards, one per suit
//	56–59: Jesters, one per suit
//
// This bijection is the contract between the engine and any external
// decision-maker; NewCard and the Suit/Rank accessors must round-trip exactly.
type Card uint8

// NoCard represents the absence of a card (e.g. trump before it is drawn).
const NoCard Card = 0xFF

const (
	wizardBase Card = 52
	jesterBase Card = 56
)

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	switch rank {
	case RankWizard:
		return wizardBase + Card(suit)
	case RankJester:
		return jesterBase + Card(suit)
	default:
		return Card(suit*13 + rank - 1)
	}
}

// Suit returns the card's suit index (0–3).
func (c Card) Suit() uint8 {
	switch {
	case c < wizardBase:
		return uint8(c) / 13
	case c < jesterBase:
		return uint8(c - wizardBase)
	default:
		return uint8(c - jesterBase)
	}
}

// Rank returns the card's rank: RankJester, 1–13, or RankWizard.
func (c Card) Rank() uint8 {
	switch {
	case c < wizardBase:
		return uint8(c)%13 + 1
	case c < jesterBase:
		return RankWizard
	default:
		return RankJester
	}
}

// IsWizard reports whether the card is a Wizard.
func (c Card) IsWizard() bool { return c >= wizardBase && c < jesterBase }

// IsJester reports whether the card is a Jester.
func (c Card) IsJester() bool { return c >= jesterBase && c < DeckSize }

// IsSpecial reports whether the card is a Wizard or a Jester.
func (c Card) IsSpecial() bool { return c >= wizardBase && c < DeckSize }

var suitNames = [4]string{"Hearts", "Diamonds", "Clubs", "Spades"}

var rankNames = [15]string{
	"Jester", "1", "2", "3", "4", "5", "6", "7",
	"8", "9", "10", "11", "12", "13", "Wizard",
}

// String renders the card for diagnostics, e.g. "7 of Clubs", "Wizard", "Jester".
func (c Card) String() string {
	if c == NoCard {
		return "none"
	}
	if c.IsSpecial() {
		return rankNames[c.Rank()]
	}
	return rankNames[c.Rank()] + " of " + suitNames[c.Suit()]
}

// SuitName returns the display name for a suit index.
func SuitName(suit uint8) string {
	if suit >= NumSuits {
		return "none"
	}
	return suitNames[suit]
}

// ---------------------------------------------------------------------------
// Action space
// ---------------------------------------------------------------------------

// NumActions is the size of the shared action space. An action is interpreted
// by phase: a bid amount (0..round) during Bidding, a card encoding index
// during Playing. Bids never exceed MaxRound (20), so the 60-wide card space
// covers both.
const NumActions = DeckSize

// Phase identifies the decision phase of a round.
type Phase uint8

const (
	PhaseBidding Phase = 0
	PhasePlaying Phase = 1
)

// String returns the display name of the phase.
func (p Phase) String() string {
	if p == PhaseBidding {
		return "Bidding"
	}
	return "Playing"
}
