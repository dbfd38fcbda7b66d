package slidefactory

// Logger receives progress messages.
// Info is regular progress, Verbose is detail such as full commands and
// tool output, Error is for failures the caller reports.
type Logger interface {
	Info(msg string)
	Verbose(msg string)
	Error(msg string)
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Info(string)    {}
func (NopLogger) Verbose(string) {}
func (NopLogger) Error(string)   {}

var _ Logger = NopLogger{}
