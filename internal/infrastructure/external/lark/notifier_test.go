package lark

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/application/port"
)

type sentMessage struct {
	chatID  string
	msgType string
	text    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeSender) send(ctx context.Context, req *larkIm.CreateMessageReq) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var content map[string]string
	if err := json.Unmarshal([]byte(*req.Body.Content), &content); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{
		chatID:  *req.Body.ReceiveId,
		msgType: *req.Body.MsgType,
		text:    content["text"],
	})
	return "om_1", nil
}

func newTestMessenger(f *fakeSender) *Messenger {
	return &Messenger{send: f.send, logger: zap.NewNop()}
}

func TestMessenger_SendText(t *testing.T) {
	f := &fakeSender{}
	m := newTestMessenger(f)

	id, err := m.SendText(context.Background(), "oc_ledger", "Line \"one\"\nمطعم النخبة")
	require.NoError(t, err)
	assert.Equal(t, "om_1", id)
	require.Len(t, f.sent, 1)
	assert.Equal(t, sentMessage{chatID: "oc_ledger", msgType: "text", text: "Line \"one\"\nمطعم النخبة"}, f.sent[0])
}

func TestMessenger_SendTextValidation(t *testing.T) {
	m := newTestMessenger(&fakeSender{})

	_, err := m.SendText(context.Background(), "", "hello")
	assert.Error(t, err)
	_, err = m.SendText(context.Background(), "oc_ledger", "")
	assert.Error(t, err)
}

func TestMessenger_SendError(t *testing.T) {
	m := newTestMessenger(&fakeSender{err: errors.New("code=99991663")})

	_, err := m.SendText(context.Background(), "oc_ledger", "hello")
	assert.ErrorContains(t, err, "failed to send message")
}

func TestNotifier_Notify(t *testing.T) {
	f := &fakeSender{}
	n := NewNotifier(newTestMessenger(f), "oc_ledger", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	n.Notify(ctx, "Payment recorded", port.NotifySuccess)
	cancel()
	require.NoError(t, n.Close())

	require.Len(t, f.sent, 1)
	assert.Equal(t, "✅ Payment recorded", f.sent[0].text)
}

func TestNotifier_FailureIsDropped(t *testing.T) {
	n := NewNotifier(newTestMessenger(&fakeSender{err: errors.New("offline")}), "oc_ledger", zap.NewNop())

	n.Notify(context.Background(), "Network error", port.NotifyError)
	assert.NoError(t, n.Close())
}
