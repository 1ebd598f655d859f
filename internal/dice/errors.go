package dice

import "errors"

// Kind classifies a roll failure for the transport layer.
type Kind string

const (
	KindParse           Kind = "parse_error"
	KindInvalidDie      Kind = "invalid_die"
	KindTooFewDice      Kind = "too_few_dice"
	KindTooManyDice     Kind = "too_many_dice"
	KindInvalidModifier Kind = "invalid_modifier"
)

// Error is a request-scoped roll failure. The message is meant for the user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrParse           = &Error{Kind: KindParse, Message: "parse error"}
	ErrInvalidDie      = &Error{Kind: KindInvalidDie, Message: "invalid die"}
	ErrTooFewDice      = &Error{Kind: KindTooFewDice, Message: "too few dice"}
	ErrTooManyDice     = &Error{Kind: KindTooManyDice, Message: "too many dice"}
	ErrInvalidModifier = &Error{Kind: KindInvalidModifier, Message: "invalid modifier"}
)

// ErrSourceUnavailable is returned when a random source cannot be acquired.
var ErrSourceUnavailable = errors.New("random source unavailable")
