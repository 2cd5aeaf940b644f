package duplicate_test

import (
	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/duplicate"
	"github.com/rcbudget/backend/internal/models"
)

// createTestImportTarget builds an empty fiscal year that carries the money
// types and categories the aggregate snapshot references.
func (suite *TestSuiteStandard) createTestImportTarget() (models.ResponsibilityCentre, models.FiscalYear) {
	centre := models.ResponsibilityCentre{Name: uuid.New().String()}
	suite.mustCreate(&centre)

	fiscalYear := models.FiscalYear{Name: "FY 2026-2027", ResponsibilityCentreID: centre.ID}
	suite.mustCreate(&fiscalYear)

	for _, moneyType := range []models.MoneyType{
		{FiscalYearID: fiscalYear.ID, Code: "AB", Name: "A-Base", IsDefault: true},
		{FiscalYearID: fiscalYear.ID, Code: "CD", Name: "Carry-Forward"},
	} {
		suite.mustCreate(&moneyType)
	}

	for _, category := range []models.Category{
		{FiscalYearID: fiscalYear.ID, Name: "Operations"},
		{FiscalYearID: fiscalYear.ID, Name: "Personnel"},
	} {
		suite.mustCreate(&category)
	}

	spendingCategory := models.SpendingCategory{FiscalYearID: fiscalYear.ID, Name: "Contracted Services"}
	suite.mustCreate(&spendingCategory)

	return centre, fiscalYear
}

func (suite *TestSuiteStandard) TestImportRoundTrip() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	centre, fiscalYear := suite.createTestImportTarget()

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)

	suite.Assert().Equal(1, result.FundingItems)
	suite.Assert().Equal(1, result.SpendingItems)
	suite.Assert().Equal(1, result.ProcurementItems)
	suite.Assert().Equal(1, result.TrainingItems)
	suite.Assert().Equal(1, result.TravelItems)
	suite.Assert().Empty(result.Errors)

	var item models.SpendingItem
	err = models.DB.Preload("Allocations").Preload("Events").Preload("Invoices.Files").First(&item, "fiscal_year_id = ?", fiscalYear.ID).Error
	suite.Require().Nil(err)

	suite.Assert().Equal("Workshop Supplies", item.Name)
	suite.Assert().Equal(models.StatusCommitted, item.Status)

	// References resolved against the target fiscal year.
	suite.Require().NotNil(item.CategoryID)
	var category models.Category
	suite.Require().Nil(models.DB.First(&category, "id = ?", item.CategoryID).Error)
	suite.Assert().Equal(fiscalYear.ID, category.FiscalYearID)

	suite.Require().Len(item.Allocations, 1)
	var moneyType models.MoneyType
	suite.Require().Nil(models.DB.First(&moneyType, "id = ?", item.Allocations[0].MoneyTypeID).Error)
	suite.Assert().Equal(fiscalYear.ID, moneyType.FiscalYearID)
	suite.Assert().Equal("AB", moneyType.Code)

	suite.Require().Len(item.Events, 1)
	suite.Require().Len(item.Invoices, 1)
	suite.Require().Len(item.Invoices[0].Files, 1)
	suite.Assert().Equal([]byte("%PDF-1.7 invoice"), item.Invoices[0].Files[0].Content)

	var procurement models.ProcurementItem
	err = models.DB.Preload("Events.Files").Preload("Quotes.Files").First(&procurement, "fiscal_year_id = ?", fiscalYear.ID).Error
	suite.Require().Nil(err)
	suite.Require().Len(procurement.Events, 1)
	suite.Require().Len(procurement.Events[0].Files, 1)
	suite.Assert().Equal([]byte("%PDF-1.7 rfq"), procurement.Events[0].Files[0].Content)
	suite.Require().Len(procurement.Quotes, 1)
	suite.Require().Len(procurement.Quotes[0].Files, 1)
	suite.Assert().Equal([]byte("%PDF-1.7 quote"), procurement.Quotes[0].Files[0].Content)
}

func (suite *TestSuiteStandard) TestImportVersionTooNew() {
	centre, fiscalYear := suite.createTestImportTarget()

	snapshot := duplicate.Snapshot{}
	snapshot.Metadata.Version = duplicate.FormatVersion + 1

	_, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Assert().ErrorIs(err, duplicate.ErrSnapshotVersion)
}

// TestImportFiscalYearMismatch verifies that a fiscal year is only found
// underneath the responsibility centre it belongs to.
func (suite *TestSuiteStandard) TestImportFiscalYearMismatch() {
	_, fiscalYear := suite.createTestImportTarget()

	other := models.ResponsibilityCentre{Name: "Other Centre"}
	suite.mustCreate(&other)

	_, err := duplicate.Import(models.DB, other.ID, fiscalYear.ID, duplicate.Snapshot{}, duplicate.Options{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

// TestImportUnknownMoneyType verifies that an item whose allocation
// references a money type code the target does not have is skipped and
// reported, while items without allocations still import.
func (suite *TestSuiteStandard) TestImportUnknownMoneyType() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	centre := models.ResponsibilityCentre{Name: "Bare Centre"}
	suite.mustCreate(&centre)

	fiscalYear := models.FiscalYear{Name: "FY 2026-2027", ResponsibilityCentreID: centre.ID}
	suite.mustCreate(&fiscalYear)

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)

	// Every line item in the aggregate carries an allocation.
	suite.Assert().Equal(0, result.FundingItems)
	suite.Assert().Equal(0, result.SpendingItems)
	suite.Require().Len(result.Errors, 5)
	suite.Assert().Equal(duplicate.KindFundingItem, result.Errors[0].Kind)
	suite.Assert().Equal("Infrastructure Grant", result.Errors[0].Name)
	suite.Assert().Contains(result.Errors[0].Error, "money type code")

	// The failed items were rolled back completely.
	suite.Assert().Equal(int64(0), suite.count(&models.FundingItem{}, "fiscal_year_id = ?", fiscalYear.ID))
	suite.Assert().Equal(int64(0), suite.count(&models.SpendingEvent{}, "true"))
}

// TestImportUnknownCategory verifies that an unknown category name does not
// fail the item, it is imported uncategorized.
func (suite *TestSuiteStandard) TestImportUnknownCategory() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	centre := models.ResponsibilityCentre{Name: "Bare Centre"}
	suite.mustCreate(&centre)

	fiscalYear := models.FiscalYear{Name: "FY 2026-2027", ResponsibilityCentreID: centre.ID}
	suite.mustCreate(&fiscalYear)

	// Money types exist, categories do not.
	for _, code := range []string{"AB", "CD"} {
		moneyType := models.MoneyType{FiscalYearID: fiscalYear.ID, Code: code}
		suite.mustCreate(&moneyType)
	}

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)
	suite.Assert().Empty(result.Errors)

	var item models.FundingItem
	suite.Require().Nil(models.DB.First(&item, "fiscal_year_id = ?", fiscalYear.ID).Error)
	suite.Assert().Nil(item.CategoryID)
}

func (suite *TestSuiteStandard) TestImportNameGlob() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	centre, fiscalYear := suite.createTestImportTarget()

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{NameGlob: "Workshop*"})
	suite.Require().Nil(err)

	suite.Assert().Equal(1, result.SpendingItems)
	suite.Assert().Equal(0, result.FundingItems)
	suite.Assert().Equal(0, result.ProcurementItems)
	suite.Assert().Equal(0, result.TrainingItems)
	suite.Assert().Equal(0, result.TravelItems)

	// Filtered items are skipped silently, not reported as errors.
	suite.Assert().Empty(result.Errors)
}

// TestImportPerItemIsolation imports the same snapshot twice. The second
// run fails every item on the name uniqueness constraint, but the records
// of the first run survive untouched.
func (suite *TestSuiteStandard) TestImportPerItemIsolation() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	centre, fiscalYear := suite.createTestImportTarget()

	first, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)
	suite.Require().Empty(first.Errors)

	second, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)

	suite.Assert().Equal(0, second.FundingItems)
	suite.Assert().Equal(0, second.SpendingItems)
	suite.Require().Len(second.Errors, 5)
	suite.Assert().Contains(second.Errors[0].Error, "already in use")

	suite.Assert().Equal(int64(1), suite.count(&models.SpendingItem{}, "fiscal_year_id = ?", fiscalYear.ID))
	suite.Assert().Equal(int64(1), suite.count(&models.SpendingInvoice{}, "true"))
}

// TestImportNullContent verifies that a file whose payload was not
// available at export time is skipped without failing the item.
func (suite *TestSuiteStandard) TestImportNullContent() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	snapshot.SpendingItems[0].Invoices[0].Files[0].Content = nil

	centre, fiscalYear := suite.createTestImportTarget()

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)
	suite.Assert().Empty(result.Errors)
	suite.Assert().Equal(1, result.SpendingItems)

	suite.Assert().Equal(int64(1), suite.count(&models.SpendingInvoice{}, "true"))
	suite.Assert().Equal(int64(0), suite.count(&models.SpendingInvoiceFile{}, "true"))
}

func (suite *TestSuiteStandard) TestImportInvalidBase64() {
	source := suite.createTestAggregate()

	snapshot, err := duplicate.Export(models.DB, source.FiscalYear.ID, "api")
	suite.Require().Nil(err)

	garbage := "this is not base64!"
	snapshot.SpendingItems[0].Invoices[0].Files[0].Content = &garbage

	centre, fiscalYear := suite.createTestImportTarget()

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, snapshot, duplicate.Options{})
	suite.Require().Nil(err)

	suite.Assert().Equal(0, result.SpendingItems)
	suite.Require().Len(result.Errors, 1)
	suite.Assert().Equal(duplicate.KindSpendingItem, result.Errors[0].Kind)
	suite.Assert().Contains(result.Errors[0].Error, "not valid base64")

	// The invoice of the failed item was rolled back with it.
	suite.Assert().Equal(int64(0), suite.count(&models.SpendingInvoice{}, "true"))
}

// TestImportEmptySnapshot verifies that importing an empty snapshot is a
// harmless no-op.
func (suite *TestSuiteStandard) TestImportEmptySnapshot() {
	centre, fiscalYear := suite.createTestImportTarget()

	result, err := duplicate.Import(models.DB, centre.ID, fiscalYear.ID, duplicate.Snapshot{}, duplicate.Options{})
	suite.Require().Nil(err)

	suite.Assert().Equal(duplicate.Result{Errors: []duplicate.ItemError{}}, result)
}
