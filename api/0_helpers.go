package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/go-playground/validator/v10"

	"github.com/fulldump/dataview/dataview"
	"github.com/fulldump/dataview/service"
)

var ErrInternal = errors.New("internal error")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// describeError maps an error to its http status and a human description.
func describeError(ctx context.Context, err error) (int, string) {

	var validationErrors validator.ValidationErrors
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var semanticError *jsonv2.SemanticError
	var syntacticError *jsontext.SyntacticError

	switch {
	case errors.Is(err, box.ErrResourceNotFound):
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case errors.Is(err, box.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.Is(err, service.ErrorViewNotFound):
		return http.StatusNotFound, fmt.Sprintf("view '%s' does not exist", box.GetUrlParameter(ctx, "viewName"))
	case errors.Is(err, service.ErrorViewAlreadyExists):
		return http.StatusConflict, "choose another name or drop the view first"
	case errors.Is(err, dataview.ErrInvalidId):
		return http.StatusNotFound, "item does not exist"
	case errors.Is(err, dataview.ErrDuplicateId):
		return http.StatusConflict, "item ids must be unique"
	case errors.Is(err, dataview.ErrMissingId):
		return http.StatusBadRequest, "every item needs an id"
	case errors.Is(err, dataview.ErrPrecondition):
		return http.StatusBadRequest, "operation not allowed in the current state"
	case errors.As(err, &validationErrors):
		return http.StatusBadRequest, "Invalid request"
	case errors.As(err, &syntaxError), errors.As(err, &syntacticError):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.As(err, &typeError), errors.As(err, &semanticError):
		return http.StatusBadRequest, "Unexpected JSON type"
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Missing body"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := describeError(ctx, err)
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
