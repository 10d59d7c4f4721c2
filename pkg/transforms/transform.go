package transforms

import (
	"fmt"
	"reflect"
)

// TransformDefinition overrides string fields of a record when all of its Match fields print as the given values.
// Type is the Go type name of the record, for example ctdf.Route.
type TransformDefinition struct {
	Type  string            `yaml:"type" validate:"required"`
	Match map[string]string `yaml:"match" validate:"required,min=1"`
	Data  map[string]string `yaml:"data" validate:"required,min=1"`
}

// Transform applies the definition to a pointer to a struct, returning whether it matched
func (t *TransformDefinition) Transform(input any) bool {
	inputValue := reflect.ValueOf(input)
	if inputValue.Kind() != reflect.Pointer || inputValue.IsNil() {
		return false
	}

	inputValue = inputValue.Elem()
	if inputValue.Kind() != reflect.Struct || inputValue.Type().String() != t.Type {
		return false
	}

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || fmt.Sprint(field.Interface()) != value {
			return false
		}
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		if field.IsValid() && field.CanSet() && field.Kind() == reflect.String {
			field.SetString(value)
		}
	}

	return true
}
