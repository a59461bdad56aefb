// Package push sends notifications through the cloud messaging provider.
// The rest of the system treats it as an opaque send(message) capability.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resq-bknd/internal/models"
)

type Client struct {
	baseURL   string
	serverKey string
	http      *http.Client
}

func NewClient(baseURL, serverKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		serverKey: serverKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send delivers one notification to the topic named in n.
func (c *Client) Send(ctx context.Context, n models.Notification) error {
	msg := fcmMessage{
		To: "/topics/" + n.Topic,
		Notification: fcmNotification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/fcm/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push request: provider returned %d", resp.StatusCode)
	}
	return nil
}
