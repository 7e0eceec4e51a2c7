package criteria

import (
	"github.com/viant/schedsim/service/dao"
)

// StateParameter is the parameter name used to filter by state
const StateParameter = "State"

// FilterByState returns true when state satisfies every State parameter.
// Parameters with other names are ignored.
func FilterByState(state string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != StateParameter {
			continue
		}
		if !matches(state, parameter.Value) {
			return false
		}
	}
	return true
}

func matches(state string, value interface{}) bool {
	switch actual := value.(type) {
	case string:
		return state == actual
	case []string:
		for _, candidate := range actual {
			if state == candidate {
				return true
			}
		}
		return false
	}
	return true
}
