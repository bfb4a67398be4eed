package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the class of an asset holding
type AssetType string

const (
	AssetTypeMutualFund   AssetType = "MUTUAL_FUND"
	AssetTypeStock        AssetType = "STOCK"
	AssetTypeRealEstate   AssetType = "REAL_ESTATE"
	AssetTypeMetal        AssetType = "METAL"
	AssetTypeBankAccount  AssetType = "BANK_ACCOUNT"
	AssetTypeFixedDeposit AssetType = "FIXED_DEPOSIT"
	AssetTypeNPS          AssetType = "NPS"
	AssetTypePPF          AssetType = "PPF"
	AssetTypeEPF          AssetType = "EPF"
	AssetTypeInsurance    AssetType = "INSURANCE"
	AssetTypeCreditCard   AssetType = "CREDIT_CARD"
	AssetTypeLoan         AssetType = "LOAN"
)

// AllAssetTypes lists every asset type in display order
var AllAssetTypes = []AssetType{
	AssetTypeMutualFund,
	AssetTypeStock,
	AssetTypeRealEstate,
	AssetTypeMetal,
	AssetTypeBankAccount,
	AssetTypeFixedDeposit,
	AssetTypeNPS,
	AssetTypePPF,
	AssetTypeEPF,
	AssetTypeInsurance,
	AssetTypeCreditCard,
	AssetTypeLoan,
}

// IsValid reports whether t is a known asset type
func (t AssetType) IsValid() bool {
	for _, known := range AllAssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsLiability reports whether holdings of this type reduce net worth
func (t AssetType) IsLiability() bool {
	return t == AssetTypeCreditCard || t == AssetTypeLoan
}

// HasLiveFeed reports whether this type is valued from an external price feed
// (everything else is valued from stored figures)
func (t AssetType) HasLiveFeed() bool {
	return t == AssetTypeMutualFund || t == AssetTypeMetal
}

// AssetDetails is the tagged-variant payload of an Asset. Each asset type
// carries only the fields relevant to it.
type AssetDetails interface {
	// Kind returns the asset type this detail struct belongs to
	Kind() AssetType

	// Validate ensures the details adhere to domain rules
	Validate() error
}

// Asset represents a single holding in the portfolio
type Asset struct {
	ID    uuid.UUID
	Type  AssetType
	Label string

	// ExpectedReturn is the user-configured annual growth assumption as a
	// fraction (0.10 = 10%). Zero means "use the category default".
	ExpectedReturn decimal.Decimal

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Details AssetDetails
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.Label == "" {
		return errors.New("asset label cannot be empty")
	}

	if !a.Type.IsValid() {
		return fmt.Errorf("unknown asset type %q", a.Type)
	}

	if a.ExpectedReturn.IsNegative() {
		return errors.New("expected return rate cannot be negative")
	}

	if a.Details == nil {
		return errors.New("asset details cannot be nil")
	}

	// Details must match the declared type
	if a.Details.Kind() != a.Type {
		return fmt.Errorf("details kind %q does not match asset type %q", a.Details.Kind(), a.Type)
	}

	return a.Details.Validate()
}

// ReturnRate returns the effective annual return rate for forecasting:
// the asset's own rate when set, otherwise the category default.
func (a *Asset) ReturnRate() decimal.Decimal {
	if !a.ExpectedReturn.IsZero() {
		return a.ExpectedReturn
	}
	return DefaultReturnRate(a)
}

// NewDetails returns a zero-value details struct for the given asset type,
// used to decode stored detail documents into their concrete variant.
func NewDetails(t AssetType) (AssetDetails, error) {
	switch t {
	case AssetTypeMutualFund:
		return &MutualFundDetails{}, nil
	case AssetTypeStock:
		return &StockDetails{}, nil
	case AssetTypeRealEstate:
		return &RealEstateDetails{}, nil
	case AssetTypeMetal:
		return &MetalDetails{}, nil
	case AssetTypeBankAccount:
		return &BankAccountDetails{}, nil
	case AssetTypeFixedDeposit:
		return &FixedDepositDetails{}, nil
	case AssetTypeNPS:
		return &NPSDetails{}, nil
	case AssetTypePPF:
		return &PPFDetails{}, nil
	case AssetTypeEPF:
		return &EPFDetails{}, nil
	case AssetTypeInsurance:
		return &InsuranceDetails{}, nil
	case AssetTypeCreditCard:
		return &CreditCardDetails{}, nil
	case AssetTypeLoan:
		return &LoanDetails{}, nil
	default:
		return nil, fmt.Errorf("unknown asset type %q", t)
	}
}
