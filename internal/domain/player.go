package domain

// Profile is created once per user on their first state-touching call and is
// immutable afterwards.
type Profile struct {
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// Wallet tracks the player's gold balance. No operation in this service
// debits it; the stored value must round-trip unchanged.
type Wallet struct {
	Gold float64 `json:"gold"`
}
