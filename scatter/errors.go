package scatter

import "fmt"

// MissingParameterError reports a required parameter absent from the
// input row.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required parameter %q is missing", e.Name)
}

// InvalidValueError reports a parameter outside its physical domain, or a
// boundary/model type a model does not support.
type InvalidValueError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("parameter %q = %v: %s", e.Name, e.Value, e.Reason)
}

// NotImplementedError reports a recognised but unimplemented
// boundary/model combination. It is deliberately distinct from
// InvalidValueError: the request is legitimate, the implementation is
// absent.
type NotImplementedError struct {
	Model   string
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: %s is not implemented", e.Model, e.Feature)
}
