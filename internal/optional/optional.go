// Copyright (c) Berk D. Demir and the runitor contributors.
// SPDX-License-Identifier: 0BSD

// Package optional provides a value that may or may not be present.
//
// Optional decodes JSON null and absent fields as None, which is how the
// Healthchecks API reports a check that was never pinged or a ping without a
// measured duration.
package optional

import (
	"bytes"
	"encoding/json"
)

type Optional[T any] struct {
	defined bool
	value   T
}

func (o Optional[T]) IsDefined() bool {
	return o.defined
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.defined
}

// OrElse returns the wrapped value, or dflt when o is None.
func (o Optional[T]) OrElse(dflt T) T {
	if !o.defined {
		return dflt
	}

	return o.value
}

func Some[T any](val T) Optional[T] {
	return Optional[T]{defined: true, value: val}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = Some(v)

	return nil
}
