package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

// maxTextBody is the longest plain-text error body used verbatim as the message
const maxTextBody = 300

// APIError is a failed API call. Status 0 means the request never got a response.
type APIError struct {
	Status  int
	Message string
	// Data is the decoded JSON error body, when there was one
	Data interface{}
}

// Error implements error
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ErrorClass buckets API failures for user-facing messages
type ErrorClass string

const (
	ClassNetwork      ErrorClass = "network"
	ClassUnauthorized ErrorClass = "unauthorized"
	ClassForbidden    ErrorClass = "forbidden"
	ClassServer       ErrorClass = "server"
	ClassValidation   ErrorClass = "validation"
)

var classKeys = map[ErrorClass]string{
	ClassNetwork:      "errors.networkError",
	ClassUnauthorized: "errors.unauthorized",
	ClassForbidden:    "errors.forbidden",
	ClassServer:       "errors.unknownApiError",
}

// Class maps the status onto an ErrorClass
func (e *APIError) Class() ErrorClass {
	switch {
	case e.Status == 0:
		return ClassNetwork
	case e.Status == http.StatusUnauthorized:
		return ClassUnauthorized
	case e.Status == http.StatusForbidden:
		return ClassForbidden
	case e.Status >= http.StatusInternalServerError:
		return ClassServer
	default:
		return ClassValidation
	}
}

// Describe renders err for display. Validation-class failures keep the server's message.
func Describe(err error, tr *i18n.Translator) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	if key, ok := classKeys[apiErr.Class()]; ok {
		return tr.T(key, nil)
	}
	return apiErr.Message
}

// Report surfaces err through the notification sink. Nothing is retried.
func Report(ctx context.Context, notifier port.Notifier, tr *i18n.Translator, err error) {
	if err == nil || notifier == nil {
		return
	}
	notifier.Notify(ctx, Describe(err, tr), port.NotifyError)
}

// newAPIError builds the error for a non-2xx response
func newAPIError(status int, contentType string, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: fmt.Sprintf("API Error: %d %s", status, http.StatusText(status)),
	}

	if !strings.Contains(contentType, "application/json") {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < maxTextBody {
			apiErr.Message = text
		}
		return apiErr
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return apiErr
	}
	apiErr.Data = data
	if msg := extractMessage(data); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// extractMessage prefers detail, then message, then error, then field errors
func extractMessage(data interface{}) string {
	switch v := data.(type) {
	case string:
		return v
	case []interface{}:
		return joinValues(v)
	case map[string]interface{}:
		for _, key := range []string{"detail", "message"} {
			if s := truthy(v[key]); s != "" {
				return s
			}
		}
		if errVal, ok := v["error"]; ok && truthy(errVal) != "" {
			if s, ok := errVal.(string); ok {
				return s
			}
			raw, _ := json.Marshal(errVal)
			return string(raw)
		}
		return fieldMessages(v)
	default:
		return ""
	}
}

// fieldMessages formats {"field_name": ["m1", "m2"]} as "Field name: m1, m2", fields sorted by name
func fieldMessages(fields map[string]interface{}) string {
	if len(fields) == 0 {
		raw, _ := json.Marshal(fields)
		return string(raw)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, key := range keys {
		value := stringify(fields[key])
		switch key {
		case "non_field_errors", "__all__", "detail":
			messages = append(messages, value)
		default:
			messages = append(messages, humanize(key)+": "+value)
		}
	}
	return strings.Join(messages, ". ")
}

func humanize(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func stringify(v interface{}) string {
	if list, ok := v.([]interface{}); ok {
		return joinValues(list)
	}
	return fmt.Sprint(v)
}

func joinValues(list []interface{}) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, ", ")
}

// truthy returns v as text when it is a non-empty value
func truthy(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	return fmt.Sprint(v)
}
