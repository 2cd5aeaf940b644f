package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/rcbudget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestFundingItemsCreateWithAllocations() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	item := suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{
		FiscalYearID: fyID,
		Name:         "Infrastructure Grant",
		Allocations: []v1.AllocationEditable{
			{MoneyTypeID: ez_uuid.UUID{UUID: moneyType.Data.ID}, CapitalAmount: decimal.NewFromInt(10000)},
		},
	})

	assert.Equal(suite.T(), "Infrastructure Grant", item.Data.Name)
	assert.Equal(suite.T(), models.StatusPlanned, item.Data.Status, "status does not default to planned")

	require.Len(suite.T(), item.Data.Allocations, 1)
	assert.Equal(suite.T(), moneyType.Data.ID, item.Data.Allocations[0].MoneyTypeID)
	assert.Equal(suite.T(), models.OwnerFundingItem, item.Data.Allocations[0].OwnerType)
}

func (suite *TestSuiteStandard) TestFundingItemsCreateFails() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	tests := []struct {
		name     string
		editable v1.FundingItemEditable
		status   int
	}{
		{
			"Fiscal year missing",
			v1.FundingItemEditable{FiscalYearID: ez_uuid.UUID{UUID: uuid.New()}, Name: "Orphan"},
			http.StatusNotFound,
		},
		{
			"Invalid status",
			v1.FundingItemEditable{FiscalYearID: fyID, Name: "Wrong", Status: "approved"},
			http.StatusBadRequest,
		},
		{
			"Allocation without amounts",
			v1.FundingItemEditable{FiscalYearID: fyID, Name: "Zero", Allocations: []v1.AllocationEditable{
				{MoneyTypeID: ez_uuid.UUID{UUID: moneyType.Data.ID}},
			}},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_ = suite.createTestFundingItem(t, tt.editable, tt.status)
		})
	}
}

// TestFundingItemsUpdateKeepsAllocations verifies that a PATCH without an
// allocations key does not touch the existing allocations.
func (suite *TestSuiteStandard) TestFundingItemsUpdateKeepsAllocations() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	item := suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{
		FiscalYearID: fyID,
		Name:         "Infrastructure Grant",
		Allocations: []v1.AllocationEditable{
			{MoneyTypeID: ez_uuid.UUID{UUID: moneyType.Data.ID}, CapitalAmount: decimal.NewFromInt(10000)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/funding-items/%s", item.Data.ID), map[string]any{
		"description": "Annual infrastructure top-up",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.FundingItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Annual infrastructure top-up", updated.Data.Description)
	assert.Equal(suite.T(), "Infrastructure Grant", updated.Data.Name)
	require.Len(suite.T(), updated.Data.Allocations, 1)
	assert.True(suite.T(), updated.Data.Allocations[0].CapitalAmount.Equal(decimal.NewFromInt(10000)))
}

// TestFundingItemsUpdateReplacesAllocations verifies that allocations in a
// PATCH body replace all existing ones.
func (suite *TestSuiteStandard) TestFundingItemsUpdateReplacesAllocations() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyTypeAB := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})
	moneyTypeCD := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "CD"})

	item := suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{
		FiscalYearID: fyID,
		Name:         "Infrastructure Grant",
		Allocations: []v1.AllocationEditable{
			{MoneyTypeID: ez_uuid.UUID{UUID: moneyTypeAB.Data.ID}, CapitalAmount: decimal.NewFromInt(10000)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/funding-items/%s", item.Data.ID), map[string]any{
		"allocations": []map[string]any{
			{"moneyTypeId": moneyTypeCD.Data.ID, "operatingAmount": "500"},
			{"moneyTypeId": moneyTypeAB.Data.ID, "capitalAmount": "2000"},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.FundingItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	require.Len(suite.T(), updated.Data.Allocations, 2)

	var total int64
	for _, allocation := range updated.Data.Allocations {
		total += allocation.CapitalAmount.IntPart() + allocation.OperatingAmount.IntPart()
	}
	assert.Equal(suite.T(), int64(2500), total)
}

// TestFundingItemsUpdateClearsAllocations verifies that an empty
// allocations list removes all allocations.
func (suite *TestSuiteStandard) TestFundingItemsUpdateClearsAllocations() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	item := suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{
		FiscalYearID: fyID,
		Name:         "Infrastructure Grant",
		Allocations: []v1.AllocationEditable{
			{MoneyTypeID: ez_uuid.UUID{UUID: moneyType.Data.ID}, CapitalAmount: decimal.NewFromInt(10000)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/funding-items/%s", item.Data.ID), map[string]any{
		"allocations": []map[string]any{},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.FundingItemResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Empty(suite.T(), updated.Data.Allocations)
}

func (suite *TestSuiteStandard) TestFundingItemsGetFiltered() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	_ = suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{FiscalYearID: fyID, Name: "Infrastructure Grant"})
	_ = suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{FiscalYearID: fyID, Name: "Infrastructure Reserve"})
	_ = suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{FiscalYearID: fyID, Name: "Training Fund"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By fiscal year", fmt.Sprintf("?fiscalYear=%s", fiscalYear.Data.ID), 3},
		{"By name", fmt.Sprintf("?fiscalYear=%s&name=Infrastructure", fiscalYear.Data.ID), 2},
		{"No match", fmt.Sprintf("?fiscalYear=%s&name=Nothing", fiscalYear.Data.ID), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/funding-items%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.FundingItemListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestFundingItemsDeleteCascades verifies that deleting an item removes
// its allocations.
func (suite *TestSuiteStandard) TestFundingItemsDeleteCascades() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	item := suite.createTestFundingItem(suite.T(), v1.FundingItemEditable{
		FiscalYearID: fyID,
		Name:         "Infrastructure Grant",
		Allocations: []v1.AllocationEditable{
			{MoneyTypeID: ez_uuid.UUID{UUID: moneyType.Data.ID}, CapitalAmount: decimal.NewFromInt(10000)},
		},
	})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/funding-items/%s", item.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var count int64
	err := models.DB.Model(&models.MoneyAllocation{}).Where("owner_id = ?", item.Data.ID).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
}
