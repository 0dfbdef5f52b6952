package namedxlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce converts a raw cell value into a typed one.
type Coerce func(raw string) (any, error)

// ReadOption configures a single Read call.
type ReadOption func(*readConfig)

type readConfig struct {
	coerce Coerce
	hook   func(any) (any, error)
}

// ReadAs coerces every read cell value with c.
func ReadAs(c Coerce) ReadOption {
	return func(cfg *readConfig) { cfg.coerce = c }
}

// ReadHook applies fn exactly once to the final value of a Read, after any
// coercion. For a range read fn receives the whole array.
func ReadHook(fn func(any) (any, error)) ReadOption {
	return func(cfg *readConfig) { cfg.hook = fn }
}

// AsFloat coerces to float64.
func AsFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("cannot coerce %q to float", raw)
	}
	return v, nil
}

// AsInt coerces to int64.
func AsInt(raw string) (any, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot coerce %q to int", raw)
	}
	return v, nil
}

// AsBool coerces to bool. Accepts strconv forms plus the uppercase
// TRUE/FALSE excel renders boolean cells as.
func AsBool(raw string) (any, error) {
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return nil, fmt.Errorf("cannot coerce %q to bool", raw)
	}
	return v, nil
}

// AsString passes the raw value through.
func AsString(raw string) (any, error) {
	return raw, nil
}
