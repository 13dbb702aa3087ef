package handle

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"calc-vision/api/internal/analyze"
)

type nullVariablesError struct {
	Keys []string
}

func (e *nullVariablesError) Error() string {
	return "dict_of_vars: null value for " + strings.Join(e.Keys, ", ")
}

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// validationDetail renders a 422 body: {"detail": [{"loc", "msg", "type"}]}.
func validationDetail(err error) gin.H {
	return gin.H{"detail": fieldErrors(err)}
}

func fieldErrors(err error) []fieldError {
	var (
		verr    *analyze.ValidationError
		nulls   *nullVariablesError
		fields  validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verr):
		return []fieldError{{Loc: []string{"body", verr.Field}, Msg: "Value error, " + verr.Msg, Type: "value_error"}}
	case errors.As(err, &nulls):
		out := make([]fieldError, 0, len(nulls.Keys))
		for _, k := range nulls.Keys {
			out = append(out, fieldError{Loc: []string{"body", "dict_of_vars", k}, Msg: "Input should be a valid number", Type: "float_type"})
		}
		return out
	case errors.As(err, &fields):
		out := make([]fieldError, 0, len(fields))
		for _, f := range fields {
			out = append(out, fieldError{Loc: []string{"body", jsonName(f.Field())}, Msg: "Field required", Type: "missing"})
		}
		return out
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []fieldError{{Loc: loc, Msg: "Input should be a valid " + typeErr.Type.String(), Type: "type_error"}}
	case errors.As(err, &synErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	default:
		return []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
}

func jsonName(field string) string {
	switch field {
	case "Image":
		return "image"
	case "Variables":
		return "dict_of_vars"
	default:
		return strings.ToLower(field)
	}
}
