package lark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

// sendFunc delivers a built message request and returns the message id
type sendFunc func(ctx context.Context, req *larkIm.CreateMessageReq) (string, error)

// Messenger sends IM messages through the Lark open platform
type Messenger struct {
	send   sendFunc
	logger *zap.Logger
}

// NewMessenger creates a new Lark message sender
func NewMessenger(sdk *SDKClient, logger *zap.Logger) *Messenger {
	client := sdk.GetClient()
	return &Messenger{
		send: func(ctx context.Context, req *larkIm.CreateMessageReq) (string, error) {
			resp, err := client.Im.Message.Create(ctx, req)
			if err != nil {
				return "", err
			}
			if !resp.Success() {
				return "", fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
			}
			if resp.Data != nil && resp.Data.MessageId != nil {
				return *resp.Data.MessageId, nil
			}
			return "", nil
		},
		logger: logger,
	}
}

// SendText posts a plain text message to a group chat
func (m *Messenger) SendText(ctx context.Context, chatID, text string) (string, error) {
	if chatID == "" {
		return "", errors.New("chatID cannot be empty")
	}
	if text == "" {
		return "", errors.New("text cannot be empty")
	}

	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal text content: %w", err)
	}

	req := larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType("chat_id").
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType("text").
			Content(string(content)).
			Build()).
		Build()

	messageID, err := m.send(ctx, req)
	if err != nil {
		m.logger.Error("Failed to send message",
			zap.String("chat_id", chatID),
			zap.Error(err))
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	m.logger.Info("Message sent successfully",
		zap.String("message_id", messageID),
		zap.String("chat_id", chatID))

	return messageID, nil
}
