// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Args is a decoded tool-call argument object. Numbers arrive as float64
// from JSON; the accessors coerce them with cast.
type Args map[string]any

// DecodeArgs parses a raw JSON argument object. Empty input and null give
// an empty Args.
func DecodeArgs(raw json.RawMessage) (Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Args{}, nil
	}
	var a Args
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON object: %v", ErrInvalidInput, err)
	}
	if a == nil {
		a = Args{}
	}
	return a, nil
}

// Has reports whether key is present with a non-null value.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// String returns the string value of key, or "" when absent.
func (a Args) String(key string) (string, error) {
	if !a.Has(key) {
		return "", nil
	}
	s, err := cast.ToStringE(a[key])
	if err != nil {
		return "", invalidArg(key, err)
	}
	return s, nil
}

// Int returns the integer value of key, or def when absent.
func (a Args) Int(key string, def int) (int, error) {
	if !a.Has(key) {
		return def, nil
	}
	n, err := cast.ToIntE(a[key])
	if err != nil {
		return 0, invalidArg(key, err)
	}
	return n, nil
}

// Int64 returns the int64 value of key, or 0 when absent.
func (a Args) Int64(key string) (int64, error) {
	if !a.Has(key) {
		return 0, nil
	}
	n, err := cast.ToInt64E(a[key])
	if err != nil {
		return 0, invalidArg(key, err)
	}
	return n, nil
}

// Ints returns the integer list under key, or nil when absent.
func (a Args) Ints(key string) ([]int, error) {
	if !a.Has(key) {
		return nil, nil
	}
	out, err := cast.ToIntSliceE(a[key])
	if err != nil {
		return nil, invalidArg(key, err)
	}
	return out, nil
}

// Strings returns the string list under key, or nil when absent.
func (a Args) Strings(key string) ([]string, error) {
	if !a.Has(key) {
		return nil, nil
	}
	out, err := cast.ToStringSliceE(a[key])
	if err != nil {
		return nil, invalidArg(key, err)
	}
	return out, nil
}

func invalidArg(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
}
