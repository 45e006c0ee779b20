package service

import "strings"

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// InvalidIDError reports an identifier that is not well-formed for the store.
type InvalidIDError struct {
	ID  string
	Err error
}

func (e *InvalidIDError) Error() string {
	return e.Err.Error()
}

func (e *InvalidIDError) Unwrap() error {
	return e.Err
}

// StoreError wraps an infrastructure failure of the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
