package entity

// Participant is one connected peer. Symbol is empty until the participant is matched.
type Participant struct {
	ID     string `json:"id"`
	Symbol Symbol `json:"symbol,omitempty"`
}
