package game

import (
	"github.com/andrescamacho/spacemining-go/internal/domain/shared"
)

// Outcome is the success flag and message every game response carries
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded builds a successful outcome
func Succeeded(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

// Failed converts a rule violation into an unsuccessful outcome. Anything
// that is not a domain error is returned unchanged for the transport to
// surface as an infrastructure failure.
func Failed(err error) (Outcome, error) {
	if shared.IsDomainError(err) {
		return Outcome{Success: false, Message: err.Error()}, nil
	}
	return Outcome{}, err
}

// IsSuccess reports whether the operation was applied
func (o Outcome) IsSuccess() bool {
	return o.Success
}

// OutcomeMessage returns the human-readable result, promoted to every
// response that embeds an Outcome
func (o Outcome) OutcomeMessage() string {
	return o.Message
}
