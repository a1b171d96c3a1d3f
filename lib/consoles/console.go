package consoles

type Console interface {
	Printf(format string, a ...any)
	Debugf(format string, a ...any)
	Warnf(format string, a ...any)
	Errorf(format string, a ...any)

	// Prepare returns the message with the current prefixes, without writing it.
	Prepare(format string, a ...any) string

	PushPrefix(format string, a ...any)
	PopPrefix()
}
