package strategy

import "time"

// Signal is a closed three-variant trading instruction. SignalNone means "no
// instruction this step", not an error.
type Signal int

const (
	SignalNone Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "NONE"
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// SignalEvent is one timestamped instruction in a signal series. The series
// shares its timestamp domain with the price series it was generated from.
type SignalEvent struct {
	Timestamp time.Time
	Signal    Signal
}
