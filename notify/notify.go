// Package notify delivers short user-facing notices from headless code to whatever is presenting it.
package notify

import (
	"time"

	"github.com/cinedex/cinedex/key"
	"github.com/spf13/viper"
)

// Variant selects how a notice is presented.
type Variant int

const (
	Default Variant = iota
	Success
	Error
)

func (v Variant) String() string {
	switch v {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "default"
	}
}

// Options tune a single notice. The zero value is a default-variant notice shown for the configured duration.
type Options struct {
	Variant  Variant
	Duration time.Duration
}

// Notifier shows notices. Calls are fire-and-forget and must not block.
type Notifier interface {
	ShowNotice(message string, options Options)
}

// Func adapts a function to Notifier.
type Func func(message string, options Options)

func (f Func) ShowNotice(message string, options Options) {
	f(message, options)
}

// Discard drops every notice.
var Discard Notifier = Func(func(string, Options) {})

// Notice is a message together with its resolved options.
type Notice struct {
	Message string
	Options
}

// DefaultDuration is notify.duration_ms, or three seconds when unset.
func DefaultDuration() time.Duration {
	if ms := viper.GetInt(key.NotifyDurationMs); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return 3 * time.Second
}

// Resolve fills in the default duration.
func (o Options) Resolve() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration()
	}
	return o
}
