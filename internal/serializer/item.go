// Package serializer converts between item wire payloads and store models.
// The field schema is explicit; constraints are checked with validator tags.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"itemplane/internal/store"
	"itemplane/pkg/api"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field error messages.
const (
	MsgRequired   = "This field is required."
	MsgNull       = "This field may not be null."
	MsgBlank      = "This field may not be blank."
	MsgInvalidStr = "Not a valid string."
	MsgInvalidInt = "A valid integer is required."
)

// ParseError reports a request body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "JSON parse error - " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields api.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item payload: %d field(s) rejected", len(e.Fields))
}

// itemFields is the validated shape of an item. Tags name the wire field.
type itemFields struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Quantity    int    `json:"quantity" validate:"gte=0,lte=2147483647"`
}

// trailingZeros lets "3.0" through as the integer 3.
var trailingZeros = regexp.MustCompile(`\.0*$`)

// ItemSerializer validates item payloads.
type ItemSerializer struct {
	validate *validator.Validate
}

// New creates an ItemSerializer whose errors are keyed by JSON field name.
func New() *ItemSerializer {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ItemSerializer{validate: v}
}

// Decode parses body and applies it on top of base.
//
// With partial set only the fields present in body are checked; otherwise
// missing required fields are rejected. The returned error is a *ParseError
// or a *ValidationError. base.ID is carried through unchanged.
func (s *ItemSerializer) Decode(body []byte, base store.Item, partial bool) (store.Item, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return base, err
	}

	fields := itemFields{
		Name:        base.Name,
		Description: base.Description,
		Quantity:    base.Quantity,
	}
	errs := api.ValidationErrors{}

	if v, ok := obj["name"]; ok {
		if str, msg := toString(v); msg != "" {
			errs.Add("name", msg)
		} else {
			fields.Name = str
		}
	} else if !partial {
		errs.Add("name", MsgRequired)
	}

	if v, ok := obj["description"]; ok {
		if str, msg := toString(v); msg != "" {
			errs.Add("description", msg)
		} else {
			fields.Description = str
		}
	}

	if v, ok := obj["quantity"]; ok {
		if n, msg := toInt(v); msg != "" {
			errs.Add("quantity", msg)
		} else {
			fields.Quantity = n
		}
	}

	if err := s.validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return base, err
		}
		for _, fe := range fieldErrs {
			// a field that already failed its type check keeps that single message
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs.Add(fe.Field(), constraintMessage(fe))
		}
	}

	if len(errs) > 0 {
		return base, &ValidationError{Fields: errs}
	}

	return store.Item{
		ID:          base.ID,
		Name:        fields.Name,
		Description: fields.Description,
		Quantity:    fields.Quantity,
	}, nil
}

// ToAPI renders a stored item.
func ToAPI(item store.Item) api.Item {
	return api.Item{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
	}
}

// ToAPIList renders items, never returning nil so the wire form is [] rather than null.
func ToAPIList(items []store.Item) []api.Item {
	out := make([]api.Item, 0, len(items))
	for _, item := range items {
		out = append(out, ToAPI(item))
	}
	return out
}

func decodeObject(body []byte) (map[string]any, error) {
	// An empty body behaves like an empty object.
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Err: errors.New("extra data after JSON value")}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		errs := api.ValidationErrors{}
		errs.Add(api.NonFieldErrorsKey, fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", typeName(raw)))
		return nil, &ValidationError{Fields: errs}
	}
	return obj, nil
}

func toString(v any) (string, string) {
	switch val := v.(type) {
	case nil:
		return "", MsgNull
	case string:
		return strings.TrimSpace(val), ""
	case json.Number:
		return val.String(), ""
	default:
		return "", MsgInvalidStr
	}
}

func toInt(v any) (int, string) {
	var text string
	switch val := v.(type) {
	case nil:
		return 0, MsgNull
	case json.Number:
		text = val.String()
		if strings.ContainsAny(text, "eE") {
			f, err := val.Float64()
			if err != nil || f != math.Trunc(f) {
				return 0, MsgInvalidInt
			}
			return clampInt(f), ""
		}
	case string:
		text = strings.TrimSpace(val)
	default:
		return 0, MsgInvalidInt
	}

	text = trailingZeros.ReplaceAllString(text, "")
	n, err := strconv.Atoi(text)
	if errors.Is(err, strconv.ErrRange) {
		// well-formed but huge; the bounds check reports it
		if strings.HasPrefix(text, "-") {
			return math.MinInt, ""
		}
		return math.MaxInt, ""
	}
	if err != nil {
		return 0, MsgInvalidInt
	}
	return n, ""
}

// clampInt converts an integral float, pinning values outside the int32
// range to the int extremes so the bounds check still rejects them.
func clampInt(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt
	case f < math.MinInt32:
		return math.MinInt
	}
	return int(f)
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func typeName(v any) string {
	switch val := v.(type) {
	case nil:
		return "NoneType"
	case []any:
		return "list"
	case string:
		return "str"
	case bool:
		return "bool"
	case json.Number:
		if strings.ContainsAny(val.String(), ".eE") {
			return "float"
		}
		return "int"
	default:
		return fmt.Sprintf("%T", v)
	}
}
