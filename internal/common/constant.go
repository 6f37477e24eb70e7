package common

// SessionKeyPrefix is the key prefix under which session tokens are stored
// in the ephemeral key-value store.
const SessionKeyPrefix = "auth_"

// PageSize is the fixed number of entries returned per listing page.
const PageSize = 20
