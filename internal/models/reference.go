package models

import "github.com/shopspring/decimal"

// Charge is a row of m_charge.
type Charge struct {
	ID                    int64           `db:"id"`
	Name                  string          `db:"name"`
	Amount                decimal.Decimal `db:"amount"`
	CurrencyCode          string          `db:"currency_code"`
	ChargeAppliesToEnum   int             `db:"charge_applies_to_enum"`
	ChargeTimeEnum        int             `db:"charge_time_enum"`
	ChargeCalculationEnum int             `db:"charge_calculation_enum"`
	IsPenalty             bool            `db:"is_penalty"`
	IsActive              bool            `db:"is_active"`
}

// CodeValue is a row of m_code_value joined to its m_code name.
type CodeValue struct {
	ID            int64  `db:"id"`
	CodeName      string `db:"code_name"`
	Value         string `db:"code_value"`
	OrderPosition int    `db:"order_position"`
	IsActive      bool   `db:"is_active"`
}

// GLAccount is a row of acc_gl_account.
type GLAccount struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	GLCode      string `db:"gl_code"`
	AccountType string `db:"account_type"`
	Disabled    bool   `db:"disabled"`
	AuditFields
}

// ProductMapping is a row of acc_product_mapping.
type ProductMapping struct {
	ID                   int64  `db:"id"`
	GLAccountID          int64  `db:"gl_account_id"`
	ProductID            int64  `db:"product_id"`
	ProductType          int    `db:"product_type"`
	FinancialAccountType string `db:"financial_account_type"`
}
