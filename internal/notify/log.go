package notify

import "github.com/averin/budgetwatch/internal/logger"

// LogNotifier writes notifications to the structured log. It is the
// default collaborator for headless runs; desktop integrations implement
// [Notifier] and [Indicator] on top of their platform facilities.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier builds a notifier writing to log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(title, body string) {
	n.log.Info().
		Str("title", title).
		Str("body", body).
		Msg("notification")
}

// LogIndicator records badge state in the structured log.
type LogIndicator struct {
	log *logger.Logger
}

// NewLogIndicator builds an indicator writing to log.
func NewLogIndicator(log *logger.Logger) *LogIndicator {
	return &LogIndicator{log: log}
}

// SetCount implements Indicator.
func (i *LogIndicator) SetCount(n int) {
	i.log.Info().Int("count", n).Msg("alert indicator updated")
}

// SetTooltip implements Indicator.
func (i *LogIndicator) SetTooltip(text string) {
	i.log.Debug().Str("tooltip", text).Msg("alert tooltip updated")
}
