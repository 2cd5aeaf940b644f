package models_test

import (
	"github.com/rcbudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestFileSizeValidation() {
	centre := suite.createTestCentre(models.ResponsibilityCentre{})
	fiscalYear := suite.createTestFiscalYear(models.FiscalYear{ResponsibilityCentreID: centre.ID})

	item := models.ProcurementItem{FiscalYearID: fiscalYear.ID, Name: "Forklift Replacement"}
	suite.Require().Nil(models.DB.Create(&item).Error)

	quote := models.ProcurementQuote{ProcurementItemID: item.ID, Vendor: "ACME Industrial", Amount: decimal.NewFromInt(48000)}
	suite.Require().Nil(models.DB.Create(&quote).Error)

	content := []byte("%PDF-1.4 quote")

	// Size is filled in from the payload when unset
	file := models.ProcurementQuoteFile{
		FileMeta:           models.FileMeta{Name: "quote-acme.pdf", ContentType: "application/pdf"},
		ProcurementQuoteID: quote.ID,
		Content:            content,
	}
	suite.Assert().Nil(models.DB.Create(&file).Error)
	suite.Assert().Equal(int64(len(content)), file.Size)

	// A declared size that does not match the payload is rejected
	mismatch := models.ProcurementQuoteFile{
		FileMeta:           models.FileMeta{Name: "quote-acme.pdf", ContentType: "application/pdf", Size: 1},
		ProcurementQuoteID: quote.ID,
		Content:            content,
	}
	err := models.DB.Create(&mismatch).Error
	suite.Assert().ErrorIs(err, models.ErrFileSizeMismatch)
}
