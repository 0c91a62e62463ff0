// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	url                 valid URL (http/https)
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	between=min:max     number or string length between min and max (inclusive)
//	in=a:b:c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Name   string `json:"name"   validate:"required,min=2,max=120"`
//	    Email  string `json:"email"  validate:"required,email"`
//	    Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
//	    Gender string `json:"gender" validate:"required,in=men:women:unisex"`
//	}
//
// Pointer fields (partial-update payloads) are dereferenced before the
// rules run; a nil pointer with `nullable` is skipped entirely.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// Pointer fields express optionality in partial updates: a nil
		// pointer means "leave unchanged", a set pointer is validated
		// like a plain value.
		if value.Kind() == reflect.Ptr && !value.IsNil() {
			value = value.Elem()
		}

		// `nullable` + empty value skips every remaining rule.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ─── Rule dispatch ────────────────────────────────────────────────────────────

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if _, err := mail.ParseAddress(raw); err != nil {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "url":
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", field)
		}

	case "alpha_dash":
		for _, r := range raw {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes and underscores.", field)
			}
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		limit, _ := strconv.ParseFloat(param, 64)
		if size, isStr := measure(v); isStr && size < limit {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
		} else if !isStr && size < limit {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "max":
		limit, _ := strconv.ParseFloat(param, 64)
		if size, isStr := measure(v); isStr && size > limit {
			return fmt.Sprintf("The %s field may not be greater than %s characters.", field, param)
		} else if !isStr && size > limit {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "gte":
		limit, _ := strconv.ParseFloat(param, 64)
		if num, ok := numeric(v); ok && num < limit {
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}

	case "lte":
		limit, _ := strconv.ParseFloat(param, 64)
		if num, ok := numeric(v); ok && num > limit {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
		}

	case "between":
		lo, hi, ok := strings.Cut(param, ":")
		if !ok {
			return ""
		}
		loF, _ := strconv.ParseFloat(lo, 64)
		hiF, _ := strconv.ParseFloat(hi, 64)
		size, _ := measure(v)
		if size < loF || size > hiF {
			return fmt.Sprintf("The %s field must be between %s and %s.", field, lo, hi)
		}

	case "in":
		for _, allowed := range strings.Split(param, ":") {
			if raw == allowed {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// measure returns the comparable magnitude of v: character length for
// strings (second return true), numeric value otherwise.
func measure(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.String {
		return float64(len([]rune(v.String()))), true
	}
	num, _ := numeric(v)
	return num, false
}

func numeric(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
