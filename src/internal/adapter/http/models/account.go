package models

import (
	"errors"
	"strings"
)

var allowedDepositMethods = []string{"bank_transfer", "check", "cash", "wire"}

type CreateAccountRequest struct {
	CustomerID     string `json:"customerId"`
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	InitialDeposit string `json:"initialDeposit,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(currency) != 3 {
		errs = append(errs, "currency must be a 3-letter ISO code")
	}

	if strings.TrimSpace(r.InitialDeposit) != "" {
		if _, err := ParseAmount(r.InitialDeposit); err != nil {
			errs = append(errs, "initialDeposit must be a positive amount with two fraction digits")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customerId"`
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type BalanceResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	UpdatedAt     string `json:"updatedAt"`
}

type DepositRequest struct {
	AccountID     string `json:"accountId"`
	Amount        string `json:"amount"`
	DepositMethod string `json:"depositMethod"`
	Description   string `json:"description,omitempty"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if _, err := ParseAmount(r.Amount); err != nil {
		errs = append(errs, "amount must be a positive decimal with exactly two fraction digits")
	}
	if !isAllowedDepositMethod(strings.TrimSpace(r.DepositMethod)) {
		errs = append(errs, "depositMethod is not supported")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isAllowedDepositMethod(value string) bool {
	for _, allowed := range allowedDepositMethods {
		if strings.EqualFold(allowed, value) {
			return true
		}
	}
	return false
}
