package nba

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingParam     = errors.New("missing required parameter")
)

// NoDataError reports a provider call that succeeded but returned nothing to show.
type NoDataError struct {
	Msg string
}

func (e *NoDataError) Error() string { return e.Msg }

// Shape is the declared JSON shape an operation returns, on success and on failure.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeList
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "object"
}

// Result carries exactly one of a provider payload or an error payload.
// Payload is always set; Err is non-nil when Payload is the error payload.
type Result struct {
	Payload json.RawMessage
	Err     error
}

func (r Result) Failed() bool { return r.Err != nil }

// ErrorPayload renders err as {"error": msg}, or [{"error": msg}] for ShapeList.
func ErrorPayload(shape Shape, err error) json.RawMessage {
	body := map[string]string{"error": err.Error()}
	var v any = body
	if shape == ShapeList {
		v = []map[string]string{body}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func failed(shape Shape, err error) Result {
	return Result{Payload: ErrorPayload(shape, err), Err: err}
}

type fetchFunc func(ctx context.Context, p Provider, args Args) ([]byte, error)

// extractFunc inspects a provider document and returns what the operation hands back.
type extractFunc func(doc []byte, args Args) ([]byte, error)

// guard runs one provider call and folds every failure, panics included, into
// the error payload for shape.
func guard(ctx context.Context, shape Shape, call func(context.Context) ([]byte, error), extract extractFunc, args Args) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(shape, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := ctx.Err(); err != nil {
		return failed(shape, err)
	}
	doc, err := call(ctx)
	if err == nil && extract != nil {
		doc, err = extract(doc, args)
	}
	if err != nil {
		return failed(shape, err)
	}
	return Result{Payload: doc}
}

// requirePath fails with a NoDataError when the value at path is absent or empty.
// With narrow set, the value at path replaces the whole document.
func requirePath(path string, narrow bool, msg func(Args) string) extractFunc {
	return func(doc []byte, args Args) ([]byte, error) {
		if !gjson.ValidBytes(doc) {
			return nil, errors.New("provider returned invalid JSON")
		}
		v := gjson.GetBytes(doc, path)
		if isEmpty(v) {
			return nil, &NoDataError{Msg: msg(args)}
		}
		if narrow {
			return []byte(v.Raw), nil
		}
		return doc, nil
	}
}

func isEmpty(v gjson.Result) bool {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return true
	case v.IsArray():
		return len(v.Array()) == 0
	case v.IsObject():
		return len(v.Map()) == 0
	case v.Type == gjson.String:
		return v.Str == ""
	}
	return false
}
