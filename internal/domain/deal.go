package domain

import "time"

// PaymentType is how a closed deal is billed.
type PaymentType string

// Payment types.
const (
	PaymentOneTime PaymentType = "one_time"
	PaymentMonthly PaymentType = "monthly"
)

// Valid reports whether p is a known payment type.
func (p PaymentType) Valid() bool {
	return p == PaymentOneTime || p == PaymentMonthly
}

// DealStatus is the lifecycle state of a closed deal.
type DealStatus string

// Deal statuses.
const (
	DealActive    DealStatus = "active"
	DealCompleted DealStatus = "completed"
	DealCancelled DealStatus = "cancelled"
)

// Valid reports whether s is a known deal status.
func (s DealStatus) Valid() bool {
	return s == DealActive || s == DealCompleted || s == DealCancelled
}

// Deal is a closed sale attributed to a salesman.
type Deal struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"user_id"`
	LeadID               string      `json:"lead_id,omitempty"`
	Title                string      `json:"title"`
	Company              string      `json:"company"`
	Description          string      `json:"description"`
	DealValue            float64     `json:"deal_value"`
	PaymentType          PaymentType `json:"payment_type"`
	MonthlyAmount        float64     `json:"monthly_amount"`
	InstallationFee      float64     `json:"installation_fee"`
	ContractLengthMonths int         `json:"contract_length_months"`
	ClosedDate           Date        `json:"closed_date"`
	Status               DealStatus  `json:"status"`
	SalesmanName         string      `json:"salesman_name"`
	SalesmanEmail        string      `json:"salesman_email"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// DealInput carries the editable fields of a deal form.
type DealInput struct {
	LeadID               string      `json:"lead_id,omitempty"`
	Title                string      `json:"title"`
	Company              string      `json:"company"`
	Description          string      `json:"description"`
	DealValue            float64     `json:"deal_value"`
	PaymentType          PaymentType `json:"payment_type"`
	MonthlyAmount        float64     `json:"monthly_amount"`
	InstallationFee      float64     `json:"installation_fee"`
	ContractLengthMonths int         `json:"contract_length_months"`
	ClosedDate           Date        `json:"closed_date"`
	Status               DealStatus  `json:"status"`
	SalesmanName         string      `json:"salesman_name"`
	SalesmanEmail        string      `json:"salesman_email"`
}

// Normalize fills defaults for omitted enumerations.
func (in *DealInput) Normalize() {
	if in.PaymentType == "" {
		in.PaymentType = PaymentOneTime
	}
	if in.Status == "" {
		in.Status = DealActive
	}
}

// DealFilter narrows a deal listing.
type DealFilter struct {
	Status      DealStatus
	PaymentType PaymentType
	Query       string
}
