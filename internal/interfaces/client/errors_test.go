package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garyjia/vip-ledger/internal/application/port"
	"github.com/garyjia/vip-ledger/internal/i18n"
)

func TestNewAPIError_Message(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"detail wins", 401, "application/json", `{"detail":"No active account","message":"m"}`, "No active account"},
		{"message", 400, "application/json", `{"message":"Bad input"}`, "Bad input"},
		{"error string", 400, "application/json; charset=utf-8", `{"success":false,"error":"Invoice not found."}`, "Invoice not found."},
		{"error object", 400, "application/json", `{"error":{"code":7}}`, `{"code":7}`},
		{"field errors", 400, "application/json", `{"phone":["Invalid phone."],"company_name":["Required.","Too short."]}`, "Company name: Required., Too short.. Phone: Invalid phone."},
		{"non field errors", 400, "application/json", `{"non_field_errors":["Passwords differ."]}`, "Passwords differ."},
		{"list body", 400, "application/json", `["a","b"]`, "a, b"},
		{"plain text", 502, "text/plain", "upstream down", "upstream down"},
		{"html fallback", 500, "text/html", "", "API Error: 500 Internal Server Error"},
		{"bad json", 404, "application/json", "{", "API Error: 404 Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, tt.contentType, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.want, err.Message)
		})
	}
}

func TestNewAPIError_LongTextBody(t *testing.T) {
	long := make([]byte, maxTextBody)
	for i := range long {
		long[i] = 'x'
	}
	err := newAPIError(http.StatusBadGateway, "text/plain", long)
	assert.Equal(t, "API Error: 502 Bad Gateway", err.Message)
}

func TestAPIError_Class(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{0, ClassNetwork},
		{401, ClassUnauthorized},
		{403, ClassForbidden},
		{500, ClassServer},
		{503, ClassServer},
		{400, ClassValidation},
		{404, ClassValidation},
		{409, ClassValidation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&APIError{Status: tt.status}).Class(), "status %d", tt.status)
	}
}

func TestDescribe(t *testing.T) {
	en := i18n.NewTranslator("en")
	ar := i18n.NewTranslator("ar")

	assert.Equal(t, en.T("errors.networkError", nil), Describe(&APIError{Status: 0}, en))
	assert.Equal(t, ar.T("errors.unauthorized", nil), Describe(&APIError{Status: 401}, ar))
	assert.Equal(t, en.T("errors.forbidden", nil), Describe(&APIError{Status: 403}, en))
	assert.Equal(t, en.T("errors.unknownApiError", nil), Describe(&APIError{Status: 500, Message: "boom"}, en))
	assert.Equal(t, "Amount must be positive.", Describe(&APIError{Status: 400, Message: "Amount must be positive."}, en))
	assert.Equal(t, "plain", Describe(errors.New("plain"), en))
}

type recordingNotifier struct {
	messages []string
	kinds    []port.NotificationKind
}

func (r *recordingNotifier) Notify(_ context.Context, message string, kind port.NotificationKind) {
	r.messages = append(r.messages, message)
	r.kinds = append(r.kinds, kind)
}

func TestReport(t *testing.T) {
	notifier := &recordingNotifier{}
	tr := i18n.NewTranslator("en")

	Report(context.Background(), notifier, tr, nil)
	assert.Empty(t, notifier.messages)

	Report(context.Background(), notifier, tr, &APIError{Status: 403})
	assert.Equal(t, []string{tr.T("errors.forbidden", nil)}, notifier.messages)
	assert.Equal(t, []port.NotificationKind{port.NotifyError}, notifier.kinds)
}
