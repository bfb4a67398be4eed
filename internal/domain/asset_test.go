package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validMutualFund() *Asset {
	return &Asset{
		ID:    uuid.New(),
		Type:  AssetTypeMutualFund,
		Label: "Axis Bluechip Fund",
		Details: &MutualFundDetails{
			SchemeCode: "119551",
			Category:   "Equity",
			Units:      decimal.NewFromInt(100),
			CurrentNAV: decimal.NewFromFloat(52.31),
		},
	}
}

func TestAssetValidate_Valid(t *testing.T) {
	asset := validMutualFund()
	assert.NoError(t, asset.Validate())
}

func TestAssetValidate_EmptyLabel(t *testing.T) {
	asset := validMutualFund()
	asset.Label = ""

	err := asset.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "label")
}

func TestAssetValidate_UnknownType(t *testing.T) {
	asset := validMutualFund()
	asset.Type = AssetType("CRYPTO")

	assert.Error(t, asset.Validate())
}

func TestAssetValidate_DetailsKindMismatch(t *testing.T) {
	asset := validMutualFund()
	asset.Details = &LoanDetails{OutstandingAmount: decimal.NewFromInt(1000)}

	err := asset.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestAssetValidate_NilDetails(t *testing.T) {
	asset := validMutualFund()
	asset.Details = nil

	assert.Error(t, asset.Validate())
}

func TestAssetValidate_NegativeUnits(t *testing.T) {
	asset := validMutualFund()
	asset.Details.(*MutualFundDetails).Units = decimal.NewFromInt(-5)

	assert.Error(t, asset.Validate())
}

func TestAssetValidate_NegativeExpectedReturn(t *testing.T) {
	asset := validMutualFund()
	asset.ExpectedReturn = decimal.NewFromFloat(-0.05)

	assert.Error(t, asset.Validate())
}

func TestAssetReturnRate_ExplicitWins(t *testing.T) {
	asset := validMutualFund()
	asset.ExpectedReturn = decimal.NewFromFloat(0.15)

	assert.True(t, asset.ReturnRate().Equal(decimal.NewFromFloat(0.15)))
}

func TestAssetReturnRate_CategoryDefaults(t *testing.T) {
	asset := validMutualFund()
	assert.True(t, asset.ReturnRate().Equal(decimal.NewFromFloat(0.12)))

	asset.Details.(*MutualFundDetails).Category = "Debt"
	assert.True(t, asset.ReturnRate().Equal(decimal.NewFromFloat(0.07)))

	silver := &Asset{
		Type:  AssetTypeMetal,
		Label: "Silver coins",
		Details: &MetalDetails{
			Metal:       MetalSilver,
			WeightGrams: decimal.NewFromInt(500),
		},
	}
	assert.True(t, silver.ReturnRate().Equal(decimal.NewFromFloat(0.07)))
}

func TestAssetReturnRate_LiabilityDefaultsToZero(t *testing.T) {
	loan := &Asset{
		Type:    AssetTypeLoan,
		Label:   "Home loan",
		Details: &LoanDetails{OutstandingAmount: decimal.NewFromInt(250000)},
	}
	assert.True(t, loan.ReturnRate().IsZero())
}

func TestAssetTypeIsLiability(t *testing.T) {
	assert.True(t, AssetTypeLoan.IsLiability())
	assert.True(t, AssetTypeCreditCard.IsLiability())
	assert.False(t, AssetTypeMutualFund.IsLiability())
	assert.False(t, AssetTypeRealEstate.IsLiability())
}

func TestAssetTypeHasLiveFeed(t *testing.T) {
	assert.True(t, AssetTypeMutualFund.HasLiveFeed())
	assert.True(t, AssetTypeMetal.HasLiveFeed())
	assert.False(t, AssetTypeStock.HasLiveFeed())
	assert.False(t, AssetTypeBankAccount.HasLiveFeed())
}

func TestPurityFactor(t *testing.T) {
	assert.True(t, Purity24K.PurityFactor().Equal(decimal.NewFromInt(1)))
	assert.True(t, Purity22K.PurityFactor().Equal(decimal.NewFromFloat(0.9167)))
	assert.True(t, Purity18K.PurityFactor().Equal(decimal.NewFromFloat(0.75)))
	assert.True(t, Purity999.PurityFactor().Equal(decimal.NewFromInt(1)))
	assert.True(t, Purity925.PurityFactor().Equal(decimal.NewFromFloat(0.925)))
}

func TestNewDetails_CoversAllTypes(t *testing.T) {
	for _, assetType := range AllAssetTypes {
		details, err := NewDetails(assetType)
		assert.NoError(t, err)
		assert.Equal(t, assetType, details.Kind())
	}

	_, err := NewDetails(AssetType("UNKNOWN"))
	assert.Error(t, err)
}
