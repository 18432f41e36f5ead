package mercury

import "encoding/json"

// Result is the outcome of a client operation. Exactly one of Data and Error is set:
// a Result built with Fail always serializes its data as null.
type Result[T any] struct {
	Data  T
	Error *Error
}

// OK creates a successful Result.
func OK[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail creates a failed Result. A nil err is replaced by a generic protocol
// error, so a failed Result always carries an error.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Errorf(KindProtocol, "", "operation failed")
	}
	return Result[T]{Error: err}
}

// Failed reports whether the Result carries an error.
func (r Result[T]) Failed() bool {
	return r.Error != nil
}

// Err returns the Result's error as a plain error value, or nil.
func (r Result[T]) Err() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

// MarshalJSON renders the Result as {"data": ..., "error": ...}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Data  any    `json:"data"`
			Error *Error `json:"error"`
		}{Error: r.Error})
	}

	return json.Marshal(struct {
		Data  T   `json:"data"`
		Error any `json:"error"`
	}{Data: r.Data})
}
