package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/rcbudget/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMoneyTypesCreate() {
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{Code: "ab", Name: "A-Base"})

	// The code is normalized to upper case.
	assert.Equal(suite.T(), "AB", moneyType.Data.Code)
	assert.Equal(suite.T(), "A-Base", moneyType.Data.Name)
}

func (suite *TestSuiteStandard) TestMoneyTypesCreateDuplicateCode() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	_ = suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/money-types", v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "ab"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrMoneyTypeCodeNotUnique.Error(), response.Error)
}

// TestMoneyTypesSingleDefault verifies that setting a money type as default
// unsets the previous default of the fiscal year.
func (suite *TestSuiteStandard) TestMoneyTypesSingleDefault() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	first := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB", IsDefault: true})
	second := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "CD", IsDefault: true})

	assert.True(suite.T(), second.Data.IsDefault)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/money-types/%s", first.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyTypeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.IsDefault, "previous default money type was not unset")
}

func (suite *TestSuiteStandard) TestMoneyTypesUpdateDefault() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	first := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AB", IsDefault: true})
	second := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "CD"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/money-types/%s", second.Data.ID), map[string]any{
		"isDefault": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/money-types/%s", first.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyTypeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.IsDefault)
}

// TestMoneyTypesListOrder verifies that money types are sorted by display
// order before code.
func (suite *TestSuiteStandard) TestMoneyTypesListOrder() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	_ = suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "ZZ", DisplayOrder: 1})
	_ = suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "AA", DisplayOrder: 2})
	_ = suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{FiscalYearID: fyID, Code: "BB", DisplayOrder: 2})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/money-types?fiscalYear=%s", fiscalYear.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyTypeListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "ZZ", response.Data[0].Code)
	assert.Equal(suite.T(), "AA", response.Data[1].Code)
	assert.Equal(suite.T(), "BB", response.Data[2].Code)
}

func (suite *TestSuiteStandard) TestMoneyTypesDelete() {
	moneyType := suite.createTestMoneyType(suite.T(), v1.MoneyTypeEditable{Code: "AB"})

	url := fmt.Sprintf("http://example.com/v1/money-types/%s", moneyType.Data.ID)

	r := test.Request(suite.T(), http.MethodDelete, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
