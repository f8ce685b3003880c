package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oakline/banking-ledger/src/internal/domain"
)

type transferEvent struct {
	Event       string `json:"event"`
	TransferID  string `json:"transferId"`
	Reference   string `json:"reference"`
	SenderID    string `json:"senderId"`
	ReceiverID  string `json:"receiverId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// WebhookNotifier pushes completed-transfer events to a dashboard endpoint.
// The short client timeout keeps a slow consumer from holding goroutines.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *WebhookNotifier) TransferCompleted(transfer domain.Transfer) error {
	if n.url == "" {
		return nil
	}

	event := transferEvent{
		Event:      "transfer.completed",
		TransferID: transfer.ID,
		Reference:  transfer.Reference,
		SenderID:   transfer.SenderID,
		ReceiverID: transfer.ReceiverID,
		Amount:     transfer.Amount.StringFixed(2),
		Currency:   transfer.Currency,
		Status:     string(transfer.Status),
	}
	if transfer.CompletedAt != nil {
		event.CompletedAt = transfer.CompletedAt.Format(time.RFC3339)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver transfer event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
