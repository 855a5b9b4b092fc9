package datarecording

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

func isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// checkStructFields makes sure every field of the entry maps to a column.
func checkStructFields(entry any) error {
	types := reflect.TypeOf(entry)
	if types == nil || types.Kind() != reflect.Struct {
		return errors.New("entry is not a struct")
	}

	for i := 0; i < types.NumField(); i++ {
		field := types.Field(i)

		if !field.IsExported() || !isAllowedType(field.Type.Kind()) {
			return fmt.Errorf("field %s cannot be recorded", field.Name)
		}
	}

	return nil
}

// Open creates a DataRecorder for the target. A target that starts with
// clickhouse:// is a ClickHouse DSN. Anything else names a SQLite database.
func Open(target string) (DataRecorder, error) {
	if strings.HasPrefix(target, "clickhouse://") {
		return NewClickHouseRecorder(target)
	}

	return New(target)
}
