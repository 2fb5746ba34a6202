package domain

import "fmt"

// ErrorType categorizes domain-specific errors.
type ErrorType string

const (
	ErrorTypeSource     ErrorType = "source"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeEnrichment ErrorType = "enrichment"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeIO         ErrorType = "io"
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error.
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// SourceError marks a fatal input failure: the guide text could not be
// obtained at all. This is the only error class that aborts a run.
func SourceError(message string, err error) *DomainError {
	return NewError(ErrorTypeSource, message, err)
}

func EnrichmentError(message string, err error) *DomainError {
	return NewError(ErrorTypeEnrichment, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func StorageError(message string, err error) *DomainError {
	return NewError(ErrorTypeStorage, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}
