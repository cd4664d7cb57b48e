package types

const (
	FlagHome     = "home"
	FlagLogLevel = "log-level"

	DefaultHome     = "$HOME/.rsp-tutorials"
	DefaultLogLevel = "info"
)
