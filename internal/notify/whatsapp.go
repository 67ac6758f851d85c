package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultGraphAPIURL = "https://graph.facebook.com/v18.0"

// WhatsAppClient sends text messages through the WhatsApp Cloud API.
// Delivery semantics (retries, receipts) are Meta's problem; this client
// does one POST per message and reports what the API said.
type WhatsAppClient struct {
	apiURL        string
	phoneNumberID string
	accessToken   string
	client        *http.Client
}

// NewWhatsAppClientFromEnv reads WHATSAPP_PHONE_NUMBER_ID and
// WHATSAPP_ACCESS_TOKEN; returns nil when either is missing so callers
// can treat the channel as unconfigured.
func NewWhatsAppClientFromEnv() *WhatsAppClient {
	phoneNumberID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	accessToken := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	if phoneNumberID == "" || accessToken == "" {
		return nil
	}

	apiURL := os.Getenv("WHATSAPP_API_URL")
	if apiURL == "" {
		apiURL = defaultGraphAPIURL
	}

	return &WhatsAppClient{
		apiURL:        apiURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppTextRequest struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type whatsAppSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText delivers one text message and returns the provider message id.
func (c *WhatsAppClient) SendText(ctx context.Context, to, body string) (string, error) {
	payload := whatsAppTextRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = body

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("whatsapp send: status %d: %s", resp.StatusCode, respBody)
	}

	var parsed whatsAppSendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Messages) == 0 {
		return "", nil
	}
	return parsed.Messages[0].ID, nil
}
