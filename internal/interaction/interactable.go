package interaction

// Interactable is what the interaction framework drives: it says when a hand grabs and
// releases, and the host scheduler calls OnTick once per fixed physics step.
type Interactable interface {
	BeginInteraction(hand *Hand) error
	EndInteraction()
	OnTick(dt float32)
}

var _ Interactable = (*Item)(nil)
