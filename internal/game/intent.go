package game

// IntentKind names a player request.
type IntentKind string

const (
	IntentPlayCard IntentKind = "play_card"
	IntentDiscard  IntentKind = "discard"
	IntentAdvance  IntentKind = "advance"
	IntentAnswer   IntentKind = "answer"
	IntentCancel   IntentKind = "cancel"
)

// Answer carries the reply to the outstanding decision. Which field matters
// depends on the decision kind.
type Answer struct {
	Accept   bool        `json:"accept,omitempty"`    // offer_complete_system
	Choice   ProtoChoice `json:"choice,omitempty"`    // proto_star_choice
	Class    int         `json:"class,omitempty"`     // select_void_class
	TargetID int         `json:"target_id,omitempty"` // select_destruction_target
}

// Intent is a structured action request. Player 0 means the intent comes from
// a shared seat and acts for whichever player is entitled to act.
type Intent struct {
	Kind     IntentKind `json:"kind"`
	Player   int        `json:"player,omitempty"`
	CardID   int        `json:"card_id,omitempty"`
	TargetID int        `json:"target_id,omitempty"`
	Answer   Answer     `json:"answer,omitempty"`
}

func PlayIntent(player, cardID, targetID int) Intent {
	return Intent{Kind: IntentPlayCard, Player: player, CardID: cardID, TargetID: targetID}
}

func DiscardIntent(player, cardID int) Intent {
	return Intent{Kind: IntentDiscard, Player: player, CardID: cardID}
}

func AdvanceIntent(player int) Intent {
	return Intent{Kind: IntentAdvance, Player: player}
}

func AnswerIntent(player int, a Answer) Intent {
	return Intent{Kind: IntentAnswer, Player: player, Answer: a}
}

func CancelIntent(player int) Intent {
	return Intent{Kind: IntentCancel, Player: player}
}

func (t *txn) mayAct(player, want int) bool {
	return player == 0 || player == want
}
