package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// CloudAPIProvider talks to a hosted gateway over HTTP instead of keeping a
// device session. Inbound messages arrive by polling the gateway inbox.
type CloudAPIProvider struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	connected   bool
	handler     MessageHandler
	stopPolling chan bool
}

func NewCloudAPIProvider(baseURL, apiKey string) *CloudAPIProvider {
	return &CloudAPIProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		stopPolling: make(chan bool),
	}
}

func (c *CloudAPIProvider) GetProviderName() string {
	return "CloudAPI"
}

func (c *CloudAPIProvider) Connect() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/status", nil)
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to cloud API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloud API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode status response: %w", err)
	}

	if result.State != "authorized" {
		log.Printf("⚠️ Cloud API session not authorized (state: %s)", result.State)
	} else {
		log.Println("✅ Cloud API session authorized")
	}

	c.connected = true
	c.startPolling()
	return nil
}

func (c *CloudAPIProvider) Disconnect() {
	if !c.connected {
		return
	}
	c.connected = false
	close(c.stopPolling)
	log.Println("🔌 Cloud API provider disconnected")
}

func (c *CloudAPIProvider) SendText(phoneNumber, message string) error {
	payload := map[string]interface{}{
		"to":   phoneNumber,
		"body": message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloud API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *CloudAPIProvider) SetMessageHandler(handler MessageHandler) error {
	c.handler = handler
	return nil
}

func (c *CloudAPIProvider) startPolling() {
	log.Println("👂 Starting cloud API inbox polling...")

	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-c.stopPolling:
				log.Println("🛑 Cloud API polling stopped")
				return
			case <-ticker.C:
				c.pollInbox()
			}
		}
	}()
}

func (c *CloudAPIProvider) pollInbox() {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/inbox", nil)
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Inbox poll failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var result struct {
		Messages []struct {
			From     string `json:"from"`
			Name     string `json:"name"`
			Body     string `json:"body"`
			Kind     string `json:"kind"`
			MediaURL string `json:"media_url"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("⚠️ Failed to decode inbox response: %v", err)
		return
	}

	if c.handler == nil {
		return
	}

	for _, m := range result.Messages {
		kind := m.Kind
		if kind == "" {
			kind = "texto"
		}
		c.handler(InboundMessage{
			Phone:      m.From,
			SenderName: m.Name,
			Body:       m.Body,
			Kind:       kind,
			MediaURL:   m.MediaURL,
		})
	}
}

// GenerateQR fetches the pairing QR image from the gateway
func (c *CloudAPIProvider) GenerateQR() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/qr", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch QR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cloud API returned status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

func (c *CloudAPIProvider) IsConnected() bool {
	return c.connected
}

// StartKeepAlive is a no-op: the gateway owns the session
func (c *CloudAPIProvider) StartKeepAlive(ctx context.Context) {}
