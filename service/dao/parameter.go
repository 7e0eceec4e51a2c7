package dao

// Parameter represents a named filter criterion
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter matching any of the supplied values
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
