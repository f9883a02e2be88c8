package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors.
// Every rule violation of the economy surfaces as one of the types below
// and never as a panic.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// IsDomainError reports whether err (or anything it wraps) is a rule violation
// as opposed to an infrastructure failure
func IsDomainError(err error) bool {
	var domainErr interface{ domainError() *DomainError }
	return errors.As(err, &domainErr)
}

func (e *DomainError) domainError() *DomainError { return e }

// Ship-related errors

type ShipError struct {
	*DomainError
}

func NewShipError(message string) *ShipError {
	return &ShipError{DomainError: &DomainError{Message: message}}
}

type InsufficientFuelError struct {
	*ShipError
	Required  int
	Available int
}

func NewInsufficientFuelError(required, available int) *InsufficientFuelError {
	return &InsufficientFuelError{
		ShipError: NewShipError(fmt.Sprintf("Not enough fuel! Need %d, have %d", required, available)),
		Required:  required,
		Available: available,
	}
}

type InvalidShipDataError struct {
	*ShipError
}

func NewInvalidShipDataError(message string) *InvalidShipDataError {
	return &InvalidShipDataError{ShipError: NewShipError(message)}
}

type InvalidShipIndexError struct {
	*ShipError
	Index int
}

func NewInvalidShipIndexError(index int) *InvalidShipIndexError {
	return &InvalidShipIndexError{
		ShipError: NewShipError(fmt.Sprintf("Invalid ship index: %d", index)),
		Index:     index,
	}
}

// Mining errors

type ResourceUnavailableError struct {
	*DomainError
	Kind ResourceKind
}

func NewResourceUnavailableError(kind ResourceKind) *ResourceUnavailableError {
	return &ResourceUnavailableError{
		DomainError: NewDomainError("Resource not available"),
		Kind:        kind,
	}
}

type MiningFailedError struct {
	*DomainError
	Kind ResourceKind
}

func NewMiningFailedError(kind ResourceKind) *MiningFailedError {
	return &MiningFailedError{
		DomainError: NewDomainError("Mining failed - resource depleted or equipment malfunction!"),
		Kind:        kind,
	}
}

// Navigation errors

type InvalidDestinationError struct {
	*DomainError
	Index int
}

func NewInvalidDestinationError(index int, message string) *InvalidDestinationError {
	return &InvalidDestinationError{
		DomainError: NewDomainError(message),
		Index:       index,
	}
}

// Trading errors

type NoOutpostError struct {
	*DomainError
	Location string
}

func NewNoOutpostError(location string) *NoOutpostError {
	return &NoOutpostError{
		DomainError: NewDomainError("No trading outpost at this location! You must travel to a location with an outpost to trade."),
		Location:    location,
	}
}

type NoCargoError struct {
	*DomainError
}

func NewNoCargoError(message string) *NoCargoError {
	return &NoCargoError{DomainError: NewDomainError(message)}
}

// Purchasing errors

type InsufficientCreditsError struct {
	*DomainError
	Required  float64
	Available float64
}

func NewInsufficientCreditsError(required, available float64) *InsufficientCreditsError {
	return &InsufficientCreditsError{
		DomainError: NewDomainError(fmt.Sprintf("Not enough credits! Need %.0f, have %.0f", required, available)),
		Required:    required,
		Available:   available,
	}
}

type InvalidCatalogIndexError struct {
	*DomainError
	ItemType string
	Index    int
}

func NewInvalidCatalogIndexError(itemType string, index int) *InvalidCatalogIndexError {
	return &InvalidCatalogIndexError{
		DomainError: NewDomainError(fmt.Sprintf("Invalid %s", itemType)),
		ItemType:    itemType,
		Index:       index,
	}
}

// Parsing errors

type UnknownResourceKindError struct {
	*DomainError
	Input string
}

func NewUnknownResourceKindError(input string) *UnknownResourceKindError {
	return &UnknownResourceKindError{
		DomainError: NewDomainError(fmt.Sprintf("Unknown resource type: %q", input)),
		Input:       input,
	}
}

// Session errors

type GameNotInitializedError struct {
	*DomainError
}

func NewGameNotInitializedError() *GameNotInitializedError {
	return &GameNotInitializedError{DomainError: NewDomainError("Game not initialized")}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) domainError() *DomainError {
	return &DomainError{Message: e.Error()}
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
