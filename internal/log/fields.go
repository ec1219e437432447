package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldUsername  = "username"
	FieldRecipient = "recipient"
	FieldAmount    = "amount_cents"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldRemaining = "remaining_seconds"
)

// Standard component names.
const (
	ComponentApp        = "app"
	ComponentBank       = "bank"
	ComponentStorage    = "storage"
	ComponentDispatcher = "dispatcher"
	ComponentClock      = "clock"
	ComponentUI         = "ui"
)

// Standard operation names.
const (
	OpLogin    = "login"
	OpLogout   = "logout"
	OpTransfer = "transfer"
	OpLoan     = "loan"
	OpClose    = "close"
	OpSeed     = "seed"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
