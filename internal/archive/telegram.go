package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// TelegramClient delivers archive documents to a Telegram channel via the
// Bot API sendDocument method.
type TelegramClient struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// NewTelegramClient creates a client. An empty token disables delivery;
// SendDocument then reports a configuration error the caller may log.
func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		token:   token,
		baseURL: "https://api.telegram.org",
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// SendDocument uploads doc.Body as a file to doc.ChatID. Callers treat any
// returned error as non-fatal: archive delivery is best-effort by contract.
func (c *TelegramClient) SendDocument(ctx context.Context, doc Document) error {
	if c.token == "" {
		return fmt.Errorf("telegram bot token is not configured")
	}
	if doc.ChatID == "" {
		return fmt.Errorf("target chat id is not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("chat_id", doc.ChatID); err != nil {
		return fmt.Errorf("write chat_id: %w", err)
	}
	if err := mw.WriteField("caption", doc.Caption); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}

	fw, err := mw.CreateFormFile("document", doc.Filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(doc.Body); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendDocument", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram responded %d: %s", resp.StatusCode, detail)
	}
	return nil
}
