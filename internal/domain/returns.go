package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Default annual return rates (fractions) used when an asset carries no
// explicit expected return. Figures match common long-run assumptions for
// Indian asset classes.
var (
	defaultReturnMutualFundEquity = decimal.NewFromFloat(0.12)
	defaultReturnMutualFundDebt   = decimal.NewFromFloat(0.07)
	defaultReturnMutualFundHybrid = decimal.NewFromFloat(0.10)
	defaultReturnStocks           = decimal.NewFromFloat(0.12)
	defaultReturnRealEstate       = decimal.NewFromFloat(0.08)
	defaultReturnGold             = decimal.NewFromFloat(0.08)
	defaultReturnSilver           = decimal.NewFromFloat(0.07)
	defaultReturnNPS              = decimal.NewFromFloat(0.10)
	defaultReturnPPF              = decimal.NewFromFloat(0.071)
	defaultReturnEPF              = decimal.NewFromFloat(0.0825)
	defaultReturnFixedDeposit     = decimal.NewFromFloat(0.07)
	defaultReturnSavings          = decimal.NewFromFloat(0.035)
)

// DefaultReturnRate returns the category default annual return rate for an
// asset. Liabilities and insurance default to zero growth.
func DefaultReturnRate(a *Asset) decimal.Decimal {
	switch a.Type {
	case AssetTypeMutualFund:
		if d, ok := a.Details.(*MutualFundDetails); ok {
			switch strings.ToLower(d.Category) {
			case "debt":
				return defaultReturnMutualFundDebt
			case "hybrid":
				return defaultReturnMutualFundHybrid
			}
		}
		return defaultReturnMutualFundEquity
	case AssetTypeStock:
		return defaultReturnStocks
	case AssetTypeRealEstate:
		return defaultReturnRealEstate
	case AssetTypeMetal:
		if d, ok := a.Details.(*MetalDetails); ok && d.Metal == MetalSilver {
			return defaultReturnSilver
		}
		return defaultReturnGold
	case AssetTypeBankAccount:
		return defaultReturnSavings
	case AssetTypeFixedDeposit:
		return defaultReturnFixedDeposit
	case AssetTypeNPS:
		return defaultReturnNPS
	case AssetTypePPF:
		return defaultReturnPPF
	case AssetTypeEPF:
		return defaultReturnEPF
	default:
		return decimal.Zero
	}
}
