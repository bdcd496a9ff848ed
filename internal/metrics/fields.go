package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrBackend = "backend"
	AttrOutcome = "outcome"
)

// Outcome labels shared by membership and creation counters.
const (
	OutcomeJoined        = "joined"
	OutcomeLeft          = "left"
	OutcomeCreated       = "created"
	OutcomeInvalid       = "invalid"
	OutcomeMatchNotFound = "match_not_found"
	OutcomeUserNotFound  = "user_not_found"
	OutcomeMatchFull     = "match_full"
	OutcomeStorageError  = "storage_error"
	OutcomeUnavailable   = "unavailable"
	OutcomeCanceled      = "canceled"
	OutcomeInternal      = "internal"
)
