package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/rcbudget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Vehicles", FundingRestriction: models.RestrictionCapital})

	assert.Equal(suite.T(), "Vehicles", category.Data.Name)
	assert.Equal(suite.T(), models.RestrictionCapital, category.Data.FundingRestriction)
}

// TestCategoriesDefaultRestriction verifies that an empty funding
// restriction defaults to "both".
func (suite *TestSuiteStandard) TestCategoriesDefaultRestriction() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Operations"})

	assert.Equal(suite.T(), models.RestrictionBoth, category.Data.FundingRestriction)
}

func (suite *TestSuiteStandard) TestCategoriesInvalidRestriction() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{
		FiscalYearID:       ez_uuid.UUID{UUID: fiscalYear.Data.ID},
		Name:               "Operations",
		FundingRestriction: "unrestricted",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesUpdateInvalidRestriction() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Operations"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), map[string]any{
		"fundingRestriction": "unrestricted",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})
	fyID := ez_uuid.UUID{UUID: fiscalYear.Data.ID}

	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{FiscalYearID: fyID, Name: "Operations"})
	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{FiscalYearID: fyID, Name: "Personnel"})
	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Elsewhere"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Filter by fiscal year", fmt.Sprintf("?fiscalYear=%s", fiscalYear.Data.ID), 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestCategoriesSeparateNamespaces verifies that a category and a spending
// category may share a name within the same fiscal year.
func (suite *TestSuiteStandard) TestCategoriesSeparateNamespaces() {
	fiscalYear := suite.createTestFiscalYear(suite.T(), v1.FiscalYearEditable{})

	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{FiscalYearID: ez_uuid.UUID{UUID: fiscalYear.Data.ID}, Name: "Services"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/spending-categories", v1.SpendingCategoryEditable{
		FiscalYearID: ez_uuid.UUID{UUID: fiscalYear.Data.ID},
		Name:         "Services",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
}
