package params

import "fmt"

// InvalidTypeError reports a parameter value whose container type the
// expansion layer cannot handle.
type InvalidTypeError struct {
	Name  string
	Value interface{}
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("parameter %q has unsupported type %T", e.Name, e.Value)
}
