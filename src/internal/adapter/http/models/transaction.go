package models

type TransactionResponse struct {
	ID           string `json:"id"`
	AccountID    string `json:"accountId"`
	TransferID   string `json:"transferId,omitempty"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balanceAfter"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	CreatedAt    string `json:"createdAt"`
}
