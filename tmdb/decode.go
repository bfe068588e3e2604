package tmdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	errNotObject      = errors.New("body is not a JSON object")
	errNotArray       = errors.New("body is not a JSON array")
	errResultsWrapper = errors.New("body is a results wrapper")
	errNoResults      = errors.New("body has no results member")
)

// Page is a paginated listing as returned by list and search endpoints
type Page[T any] struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Results      []T `json:"results"`
}

// HasMorePages reports whether a later page exists
func (p *Page[T]) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// Decode decodes body into a slice of T. TMDB answers with a single object,
// a bare array or a {"results": [...]} wrapper depending on the endpoint;
// each shape is tried in that order and the first that decodes wins.
func Decode[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecoding)
	}

	var errs []error

	one, err := decodeObject[T](body)
	if err == nil {
		return []T{one}, nil
	}
	errs = append(errs, fmt.Errorf("object: %w", err))

	many, err := decodeArray[T](body)
	if err == nil {
		return many, nil
	}
	errs = append(errs, fmt.Errorf("array: %w", err))

	many, err = decodeResults[T](body)
	if err == nil {
		return many, nil
	}
	errs = append(errs, fmt.Errorf("results: %w", err))

	return nil, fmt.Errorf("%w: %w", ErrDecoding, errors.Join(errs...))
}

// DecodeOne decodes body and returns its first element
func DecodeOne[T any](body []byte) (T, error) {
	var zero T

	items, err := Decode[T](body)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, ErrNoData
	}
	return items[0], nil
}

// DecodePage decodes a paginated listing. Bodies that are not a results
// wrapper are decoded with Decode and reported as a single page.
func DecodePage[T any](body []byte) (*Page[T], error) {
	body = bytes.TrimSpace(body)

	raw, err := objectMembers(body)
	if err == nil {
		if _, ok := raw["results"]; ok {
			page := &Page[T]{}
			if err := safeDecode(body, page); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
			}
			results, err := decodeResults[T](body)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
			}
			page.Results = results
			return page, nil
		}
	}

	items, err := Decode[T](body)
	if err != nil {
		return nil, err
	}
	return &Page[T]{
		Page:         1,
		TotalPages:   1,
		TotalResults: len(items),
		Results:      items,
	}, nil
}

func decodeObject[T any](body []byte) (T, error) {
	var v T

	raw, err := objectMembers(body)
	if err != nil {
		return v, err
	}
	if _, ok := raw["results"]; ok {
		return v, errResultsWrapper
	}

	err = json.Unmarshal(body, &v)
	return v, err
}

func decodeArray[T any](body []byte) ([]T, error) {
	if len(body) == 0 || body[0] != '[' {
		return nil, errNotArray
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeResults[T any](body []byte) ([]T, error) {
	raw, err := objectMembers(body)
	if err != nil {
		return nil, err
	}

	results, ok := raw["results"]
	if !ok {
		return nil, errNoResults
	}
	if isNull(results) {
		return []T{}, nil
	}
	return decodeArray[T](bytes.TrimSpace(results))
}

// objectMembers splits a JSON object into its raw members
func objectMembers(body []byte) (map[string]json.RawMessage, error) {
	if len(body) == 0 || body[0] != '{' {
		return nil, errNotObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func isNull(msg json.RawMessage) bool {
	return len(msg) == 0 || string(bytes.TrimSpace(msg)) == "null"
}

// safeDecode decodes the JSON object in data into the struct pointed to by v
// one field at a time. A field that is missing, null or of the wrong type
// keeps its zero value instead of failing the whole decode, and nil slices
// are replaced by empty ones. data itself must be a JSON object or null.
func safeDecode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("safeDecode: expected pointer to struct, got %T", v)
	}
	rv = rv.Elem()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := jsonName(field)
		if !ok {
			continue
		}

		fv := rv.Field(i)
		if msg, found := raw[name]; found && !isNull(msg) {
			ptr := reflect.New(field.Type)
			if err := json.Unmarshal(msg, ptr.Interface()); err == nil {
				fv.Set(ptr.Elem())
			}
		}

		if fv.Kind() == reflect.Slice && fv.IsNil() {
			fv.Set(reflect.MakeSlice(field.Type, 0, 0))
		}
	}

	return nil
}

// jsonName returns the member name a struct field is decoded from
func jsonName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, true
}
