// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package form decodes url-encoded POST bodies into structs via `form`
// field tags. Only the scalar kinds the admin and guest forms actually use
// are supported.
package form

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

func Unmarshal(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}

	v := val.Elem()
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		fieldName := field.Tag.Get("form")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		value, exists := input[fieldName]
		if !exists || len(value) == 0 {
			continue
		}
		// NOTE: Take only the first value.
		raw := value[0]
		fieldVal := v.Field(i)
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(raw)
		case reflect.Bool:
			fieldVal.SetBool(strings.ToLower(raw) == "true" || raw == "on")
		case reflect.Int:
			if raw == "" {
				continue
			}
			intValue, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			fieldVal.SetInt(int64(intValue))
		}
	}
	return nil
}

type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}
