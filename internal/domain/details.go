package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Metal identifies the metal a MetalDetails holding is made of
type Metal string

const (
	MetalGold   Metal = "GOLD"
	MetalSilver Metal = "SILVER"
)

// MetalPurity identifies the purity grade of a metal holding
type MetalPurity string

const (
	Purity24K MetalPurity = "24K"
	Purity22K MetalPurity = "22K"
	Purity18K MetalPurity = "18K"
	// Purity999 and Purity925 are silver grades
	Purity999 MetalPurity = "999"
	Purity925 MetalPurity = "925"
)

// PurityFactor returns the fraction of the pure-metal spot price this
// purity grade is worth
func (p MetalPurity) PurityFactor() decimal.Decimal {
	switch p {
	case Purity22K:
		return decimal.NewFromFloat(0.9167)
	case Purity18K:
		return decimal.NewFromFloat(0.75)
	case Purity925:
		return decimal.NewFromFloat(0.925)
	default:
		// 24K, 999 and anything unrecognised count as pure
		return decimal.NewFromInt(1)
	}
}

// MutualFundDetails carries mutual fund specific fields
type MutualFundDetails struct {
	SchemeCode  string          `json:"scheme_code"` // AMFI scheme code for NAV lookup
	FolioNumber string          `json:"folio_number"`
	AMC         string          `json:"amc"`
	Category    string          `json:"category"` // Equity, Debt, Hybrid
	Units       decimal.Decimal `json:"units"`
	PurchaseNAV decimal.Decimal `json:"purchase_nav"`
	CurrentNAV  decimal.Decimal `json:"current_nav"` // last refreshed NAV, kept for display
}

func (d *MutualFundDetails) Kind() AssetType { return AssetTypeMutualFund }

func (d *MutualFundDetails) Validate() error {
	if d.SchemeCode == "" {
		return errors.New("mutual fund scheme code cannot be empty")
	}
	if d.Units.IsNegative() {
		return errors.New("mutual fund units cannot be negative")
	}
	return nil
}

// StockDetails carries listed stock specific fields
type StockDetails struct {
	Symbol        string          `json:"symbol"`
	Exchange      string          `json:"exchange"` // NSE or BSE
	Sector        string          `json:"sector"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"` // manually marked price
}

func (d *StockDetails) Kind() AssetType { return AssetTypeStock }

func (d *StockDetails) Validate() error {
	if d.Symbol == "" {
		return errors.New("stock symbol cannot be empty")
	}
	if d.Quantity.IsNegative() {
		return errors.New("stock quantity cannot be negative")
	}
	if d.CurrentPrice.IsNegative() {
		return errors.New("stock current price cannot be negative")
	}
	return nil
}

// RealEstateDetails carries property specific fields
type RealEstateDetails struct {
	PropertyType    string          `json:"property_type"` // Residential, Commercial, Land
	Location        string          `json:"location"`
	PurchaseValue   decimal.Decimal `json:"purchase_value"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	LoanOutstanding decimal.Decimal `json:"loan_outstanding"` // netted off the property value
	RentalIncome    decimal.Decimal `json:"rental_income"`    // monthly, informational
}

func (d *RealEstateDetails) Kind() AssetType { return AssetTypeRealEstate }

func (d *RealEstateDetails) Validate() error {
	if d.CurrentValue.IsNegative() {
		return errors.New("property current value cannot be negative")
	}
	if d.LoanOutstanding.IsNegative() {
		return errors.New("property loan outstanding cannot be negative")
	}
	return nil
}

// MetalDetails carries gold/silver holding specific fields
type MetalDetails struct {
	Metal                Metal           `json:"metal"`
	Form                 string          `json:"form"` // Physical, Digital, SGB, ETF
	Purity               MetalPurity     `json:"purity"`
	WeightGrams          decimal.Decimal `json:"weight_grams"`
	PurchasePricePerGram decimal.Decimal `json:"purchase_price_per_gram"`
	CurrentPricePerGram  decimal.Decimal `json:"current_price_per_gram"` // last refreshed spot price
}

func (d *MetalDetails) Kind() AssetType { return AssetTypeMetal }

func (d *MetalDetails) Validate() error {
	if d.Metal != MetalGold && d.Metal != MetalSilver {
		return errors.New("metal must be GOLD or SILVER")
	}
	if d.WeightGrams.IsNegative() {
		return errors.New("metal weight cannot be negative")
	}
	return nil
}

// BankAccountDetails carries savings/current account specific fields
type BankAccountDetails struct {
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"` // Savings, Current
	Branch        string          `json:"branch"`
	IFSCCode      string          `json:"ifsc_code"`
	Balance       decimal.Decimal `json:"balance"`
	InterestRate  decimal.Decimal `json:"interest_rate"` // annual fraction
}

func (d *BankAccountDetails) Kind() AssetType { return AssetTypeBankAccount }

func (d *BankAccountDetails) Validate() error {
	if d.BankName == "" {
		return errors.New("bank name cannot be empty")
	}
	if d.Balance.IsNegative() {
		return errors.New("bank balance cannot be negative")
	}
	return nil
}

// FixedDepositDetails carries FD specific fields
type FixedDepositDetails struct {
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"` // annual fraction
	StartDate      string          `json:"start_date"`    // 2006-01-02
	MaturityDate   string          `json:"maturity_date"` // 2006-01-02
	MaturityAmount decimal.Decimal `json:"maturity_amount"`
	InterestPayout string          `json:"interest_payout"` // Monthly, Quarterly, At Maturity
	Nominee        string          `json:"nominee"`
}

func (d *FixedDepositDetails) Kind() AssetType { return AssetTypeFixedDeposit }

func (d *FixedDepositDetails) Validate() error {
	if d.Principal.IsNegative() {
		return errors.New("fixed deposit principal cannot be negative")
	}
	return nil
}

// NPSDetails carries National Pension System account specific fields
type NPSDetails struct {
	PRANNumber       string          `json:"pran_number"`
	FundManager      string          `json:"fund_manager"`
	SchemePreference string          `json:"scheme_preference"` // Aggressive, Moderate, Conservative
	Tier1Balance     decimal.Decimal `json:"tier1_balance"`
	Tier2Balance     decimal.Decimal `json:"tier2_balance"`
}

func (d *NPSDetails) Kind() AssetType { return AssetTypeNPS }

func (d *NPSDetails) Validate() error {
	if d.Tier1Balance.IsNegative() || d.Tier2Balance.IsNegative() {
		return errors.New("NPS balances cannot be negative")
	}
	return nil
}

// Balance returns the combined tier 1 + tier 2 balance
func (d *NPSDetails) Balance() decimal.Decimal {
	return d.Tier1Balance.Add(d.Tier2Balance)
}

// PPFDetails carries Public Provident Fund specific fields
type PPFDetails struct {
	AccountNumber      string          `json:"account_number"`
	BankName           string          `json:"bank_name"`
	OpeningDate        string          `json:"opening_date"`
	MaturityDate       string          `json:"maturity_date"`
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	YearlyContribution decimal.Decimal `json:"yearly_contribution"`
	InterestRate       decimal.Decimal `json:"interest_rate"` // annual fraction
}

func (d *PPFDetails) Kind() AssetType { return AssetTypePPF }

func (d *PPFDetails) Validate() error {
	if d.CurrentBalance.IsNegative() {
		return errors.New("PPF balance cannot be negative")
	}
	return nil
}

// EPFDetails carries Employees' Provident Fund specific fields
type EPFDetails struct {
	UANNumber            string          `json:"uan_number"`
	EmployerName         string          `json:"employer_name"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	TotalBalance         decimal.Decimal `json:"total_balance"`
	InterestRate         decimal.Decimal `json:"interest_rate"` // annual fraction
}

func (d *EPFDetails) Kind() AssetType { return AssetTypeEPF }

func (d *EPFDetails) Validate() error {
	if d.TotalBalance.IsNegative() {
		return errors.New("EPF balance cannot be negative")
	}
	return nil
}

// InsuranceDetails carries insurance policy specific fields.
// CurrentValue is the policy's fund / surrender value and is what counts
// toward net worth; SumAssured is the cover amount, informational only.
type InsuranceDetails struct {
	PolicyNumber     string          `json:"policy_number"`
	Insurer          string          `json:"insurer"`
	PolicyType       string          `json:"policy_type"` // Term, Endowment, ULIP, Health
	PremiumAmount    decimal.Decimal `json:"premium_amount"`
	PremiumFrequency string          `json:"premium_frequency"` // Monthly, Quarterly, Yearly
	SumAssured       decimal.Decimal `json:"sum_assured"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	StartDate        string          `json:"start_date"`
	MaturityDate     string          `json:"maturity_date"`
	Nominee          string          `json:"nominee"`
}

func (d *InsuranceDetails) Kind() AssetType { return AssetTypeInsurance }

func (d *InsuranceDetails) Validate() error {
	if d.CurrentValue.IsNegative() {
		return errors.New("insurance current value cannot be negative")
	}
	return nil
}

// CreditCardDetails carries credit card specific fields; the outstanding
// balance is a liability
type CreditCardDetails struct {
	CardNumberLast4    string          `json:"card_number_last4"`
	BankName           string          `json:"bank_name"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	BillingDay         int             `json:"billing_day"`
	DueDay             int             `json:"due_day"`
	RewardPoints       decimal.Decimal `json:"reward_points"`
}

func (d *CreditCardDetails) Kind() AssetType { return AssetTypeCreditCard }

func (d *CreditCardDetails) Validate() error {
	if d.OutstandingBalance.IsNegative() {
		return errors.New("credit card outstanding balance cannot be negative")
	}
	return nil
}

// LoanDetails carries loan specific fields; the outstanding amount is a
// liability
type LoanDetails struct {
	AccountNumber     string          `json:"account_number"`
	Lender            string          `json:"lender"`
	LoanType          string          `json:"loan_type"` // Home, Car, Personal, Education
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"` // annual fraction
	EMIAmount         decimal.Decimal `json:"emi_amount"`
	TenureMonths      int             `json:"tenure_months"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
}

func (d *LoanDetails) Kind() AssetType { return AssetTypeLoan }

func (d *LoanDetails) Validate() error {
	if d.OutstandingAmount.IsNegative() {
		return errors.New("loan outstanding amount cannot be negative")
	}
	return nil
}
