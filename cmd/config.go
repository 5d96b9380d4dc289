package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// SessionStore selects the session backend: "postgres" or "redis".
	SessionStore string
	RedisAddr    string

	// SessionTTLMinutes bounds how long an idle session survives.
	SessionTTLMinutes int

	// PublicBaseURL is the externally reachable base used in QR labels.
	PublicBaseURL string

	// StrictTerminalStatuses rejects scans against delivered or returned
	// packages instead of appending further checkpoints.
	StrictTerminalStatuses bool
}
