package reading

// CardRef is the delivery-facing slice of a drawn card: enough to render a
// captioned photo without holding the whole catalog entry.
type CardRef struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Entry is one deliverable piece of a reading. The three positional entries
// carry a card; the closing summary does not.
type Entry struct {
	Card *CardRef `json:"card,omitempty"`
	Text string   `json:"text"`
}
