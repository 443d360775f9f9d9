package player

// Storage layout: three records per user, fixed collection/key pairs. The
// key/value backend scopes records by user id, so these never vary per call.
const (
	CollectionProfile   = "player/profile"
	CollectionWallet    = "player/wallet"
	CollectionInventory = "player/inventory"

	KeyProfile   = "profile"
	KeyWallet    = "wallet"
	KeyInventory = "inventory"
)

const (
	// usernamePrefixLen is how many characters of the user id seed a default
	// username when none is supplied at first contact.
	usernamePrefixLen = 8

	// saveAttempts bounds the compare-and-swap retry loop in strict write
	// mode.
	saveAttempts = 3
)
