package panel

// Notifier receives user-facing failure notices from mutating actions.
// The transport (websocket push, log line) is the caller's choice.
type Notifier interface {
	Notify(panel, message string)
}

// NopNotifier discards notifications. Used where no surface is attached.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}
