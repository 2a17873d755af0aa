package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/userhub/userhub/internal/api/shared"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/platform/logger"
	"github.com/userhub/userhub/internal/redact"
)

// ErrorResponse is the uniform error payload for every non-2xx answer.
type ErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	RequestURL   string `json:"requestURL"`
	Status       int    `json:"status"`
}

// undefinedErrorCode is substituted when a resource error carries no code.
const undefinedErrorCode = "Undefined"

// WriteError is the single place HTTP status codes are decided from
// domain outcomes. Classification, in priority order:
//
//  1. A domain.ResourceError echoes its code, message and status
//     verbatim ("Undefined" when the code is empty).
//  2. Request-validation failures answer 400 with code
//     "FormValidationError" and the joined field violation messages.
//  3. A malformed request body answers 400 with code
//     "MalformedRequestBody".
//  4. Anything else answers 500; the code is the string form of the
//     status and the full error is logged (redacted) for operator
//     diagnosis. Only the error's own message text reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var resErr *domain.ResourceError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &resErr):
		code := resErr.Code
		if code == "" {
			code = undefinedErrorCode
		}
		shared.RespondWithJSON(w, r, resErr.Status, ErrorResponse{
			ErrorCode:    code,
			ErrorMessage: resErr.Message,
			RequestURL:   requestURL(r),
			Status:       resErr.Status,
		})

	case errors.As(err, &fieldErrs):
		shared.RespondWithJSON(w, r, http.StatusBadRequest, ErrorResponse{
			ErrorCode:    "FormValidationError",
			ErrorMessage: joinFieldErrors(fieldErrs),
			RequestURL:   requestURL(r),
			Status:       http.StatusBadRequest,
		})

	case isMalformedBody(err):
		shared.RespondWithJSON(w, r, http.StatusBadRequest, ErrorResponse{
			ErrorCode:    "MalformedRequestBody",
			ErrorMessage: "The request body is not valid JSON.",
			RequestURL:   requestURL(r),
			Status:       http.StatusBadRequest,
		})

	default:
		log.Error("unclassified error",
			"error", redact.Error(err),
			"error_type", fmt.Sprintf("%T", err),
			"path", r.URL.Path,
			"method", r.Method)
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, ErrorResponse{
			ErrorCode:    strconv.Itoa(http.StatusInternalServerError),
			ErrorMessage: err.Error(),
			RequestURL:   requestURL(r),
			Status:       http.StatusInternalServerError,
		})
	}
}

// joinFieldErrors renders every field violation as a short message and
// joins them with a single space, in validation-engine order, so the
// result is deterministic for a given request shape.
func joinFieldErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, len(errs))
	for i, fe := range errs {
		msgs[i] = fieldErrorMessage(fe)
	}
	return strings.Join(msgs, " ")
}

// fieldErrorMessage maps one field violation to a human-readable message.
func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s is required.", field)
	case "notblank":
		return fmt.Sprintf("The %s must not be blank.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

// isMalformedBody reports whether err came from decoding an
// unparseable request body.
func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// requestURL reconstructs the URL the client requested, for the
// traceability field of the error payload.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.RequestURI())
}
