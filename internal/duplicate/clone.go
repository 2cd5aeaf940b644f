package duplicate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Clone creates an independent copy of a whole fiscal year aggregate in the
// same database, under the given responsibility centre and with the given
// name. Display settings and all owned records are copied, cross-references
// are rewritten to the copied records.
//
// Clone is atomic: it runs in a single transaction and any error rolls back
// everything, no partial graph is ever left behind.
func Clone(db *gorm.DB, sourceID uuid.UUID, newName string, targetCentreID uuid.UUID) (models.FiscalYear, error) {
	var source models.FiscalYear
	if err := db.First(&source, "id = ?", sourceID).Error; err != nil {
		return models.FiscalYear{}, err
	}

	var centre models.ResponsibilityCentre
	if err := db.First(&centre, "id = ?", targetCentreID).Error; err != nil {
		return models.FiscalYear{}, err
	}

	table := NewTable()

	tx := db.Begin()
	if tx.Error != nil {
		return models.FiscalYear{}, tx.Error
	}

	fiscalYear := models.FiscalYear{
		Name:                   newName,
		ResponsibilityCentreID: centre.ID,
		ShowSearch:             source.ShowSearch,
		ShowFilters:            source.ShowFilters,
		OnTargetLowerPct:       source.OnTargetLowerPct,
		OnTargetUpperPct:       source.OnTargetUpperPct,
	}

	if err := tx.Create(&fiscalYear).Error; err != nil {
		tx.Rollback()
		return models.FiscalYear{}, err
	}
	table.Register(KindFiscalYear, source.ID, fiscalYear.ID)

	for _, kind := range ChildKinds(KindFiscalYear) {
		if err := cloneChildren(tx, table, kind, source.ID, fiscalYear.ID); err != nil {
			tx.Rollback()
			return models.FiscalYear{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return models.FiscalYear{}, err
	}

	return fiscalYear, nil
}

// cloneChildren copies all records of one kind under the source fiscal year
// to the new fiscal year, including their subtrees.
func cloneChildren(tx *gorm.DB, table *Table, kind Kind, sourceFY, newFY uuid.UUID) error {
	switch kind {
	case KindMoneyType:
		return cloneMoneyTypes(tx, table, sourceFY, newFY)
	case KindCategory:
		return cloneCategories(tx, table, sourceFY, newFY)
	case KindSpendingCategory:
		return cloneSpendingCategories(tx, table, sourceFY, newFY)
	case KindFundingItem:
		return cloneFundingItems(tx, table, sourceFY, newFY)
	case KindSpendingItem:
		return cloneSpendingItems(tx, table, sourceFY, newFY)
	case KindProcurementItem:
		return cloneProcurementItems(tx, table, sourceFY, newFY)
	case KindTrainingItem:
		return cloneTrainingItems(tx, table, sourceFY, newFY)
	case KindTravelItem:
		return cloneTravelItems(tx, table, sourceFY, newFY)
	}

	return fmt.Errorf("no clone handler for entity kind %s", kind)
}

func cloneMoneyTypes(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var moneyTypes []models.MoneyType
	err := tx.Where("fiscal_year_id = ?", sourceFY).Order("display_order").Find(&moneyTypes).Error
	if err != nil {
		return err
	}

	for _, source := range moneyTypes {
		moneyType := models.MoneyType{
			FiscalYearID: newFY,
			Code:         source.Code,
			Name:         source.Name,
			IsDefault:    source.IsDefault,
			DisplayOrder: source.DisplayOrder,
		}

		if err := tx.Create(&moneyType).Error; err != nil {
			return err
		}
		table.Register(KindMoneyType, source.ID, moneyType.ID)
	}

	return nil
}

func cloneCategories(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var categories []models.Category
	err := tx.Where("fiscal_year_id = ?", sourceFY).Order("display_order").Find(&categories).Error
	if err != nil {
		return err
	}

	for _, source := range categories {
		category := models.Category{
			FiscalYearID:       newFY,
			Name:               source.Name,
			FundingRestriction: source.FundingRestriction,
			IsDefault:          source.IsDefault,
			DisplayOrder:       source.DisplayOrder,
		}

		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		table.Register(KindCategory, source.ID, category.ID)
	}

	return nil
}

func cloneSpendingCategories(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var categories []models.SpendingCategory
	err := tx.Where("fiscal_year_id = ?", sourceFY).Order("display_order").Find(&categories).Error
	if err != nil {
		return err
	}

	for _, source := range categories {
		category := models.SpendingCategory{
			FiscalYearID:       newFY,
			Name:               source.Name,
			FundingRestriction: source.FundingRestriction,
			IsDefault:          source.IsDefault,
			DisplayOrder:       source.DisplayOrder,
		}

		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		table.Register(KindSpendingCategory, source.ID, category.ID)
	}

	return nil
}

func cloneFundingItems(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var items []models.FundingItem
	if err := tx.Where("fiscal_year_id = ?", sourceFY).Find(&items).Error; err != nil {
		return err
	}

	for _, source := range items {
		item := models.FundingItem{
			FiscalYearID: newFY,
			CategoryID:   table.resolveOptional(KindCategory, source.CategoryID),
			Name:         source.Name,
			Description:  source.Description,
			Status:       source.Status,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		table.Register(KindFundingItem, source.ID, item.ID)

		if err := cloneAllocations(tx, table, source.ID, item.ID, models.OwnerFundingItem); err != nil {
			return err
		}
	}

	return nil
}

func cloneSpendingItems(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var items []models.SpendingItem
	if err := tx.Where("fiscal_year_id = ?", sourceFY).Find(&items).Error; err != nil {
		return err
	}

	for _, source := range items {
		item := models.SpendingItem{
			FiscalYearID:       newFY,
			CategoryID:         table.resolveOptional(KindCategory, source.CategoryID),
			SpendingCategoryID: table.resolveOptional(KindSpendingCategory, source.SpendingCategoryID),
			Name:               source.Name,
			Description:        source.Description,
			Status:             source.Status,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		table.Register(KindSpendingItem, source.ID, item.ID)

		if err := cloneAllocations(tx, table, source.ID, item.ID, models.OwnerSpendingItem); err != nil {
			return err
		}

		if err := cloneSpendingEvents(tx, table, source.ID, item.ID); err != nil {
			return err
		}

		if err := cloneSpendingInvoices(tx, table, source.ID, item.ID); err != nil {
			return err
		}
	}

	return nil
}

func cloneProcurementItems(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var items []models.ProcurementItem
	if err := tx.Where("fiscal_year_id = ?", sourceFY).Find(&items).Error; err != nil {
		return err
	}

	for _, source := range items {
		item := models.ProcurementItem{
			FiscalYearID: newFY,
			CategoryID:   table.resolveOptional(KindCategory, source.CategoryID),
			Name:         source.Name,
			Description:  source.Description,
			Status:       source.Status,
			Vendor:       source.Vendor,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		table.Register(KindProcurementItem, source.ID, item.ID)

		if err := cloneAllocations(tx, table, source.ID, item.ID, models.OwnerProcurementItem); err != nil {
			return err
		}

		if err := cloneProcurementEvents(tx, table, source.ID, item.ID); err != nil {
			return err
		}

		if err := cloneProcurementQuotes(tx, table, source.ID, item.ID); err != nil {
			return err
		}
	}

	return nil
}

func cloneTrainingItems(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var items []models.TrainingItem
	if err := tx.Where("fiscal_year_id = ?", sourceFY).Find(&items).Error; err != nil {
		return err
	}

	for _, source := range items {
		item := models.TrainingItem{
			FiscalYearID: newFY,
			CategoryID:   table.resolveOptional(KindCategory, source.CategoryID),
			Name:         source.Name,
			Description:  source.Description,
			Status:       source.Status,
			Provider:     source.Provider,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		table.Register(KindTrainingItem, source.ID, item.ID)

		if err := cloneAllocations(tx, table, source.ID, item.ID, models.OwnerTrainingItem); err != nil {
			return err
		}
	}

	return nil
}

func cloneTravelItems(tx *gorm.DB, table *Table, sourceFY, newFY uuid.UUID) error {
	var items []models.TravelItem
	if err := tx.Where("fiscal_year_id = ?", sourceFY).Find(&items).Error; err != nil {
		return err
	}

	for _, source := range items {
		item := models.TravelItem{
			FiscalYearID: newFY,
			CategoryID:   table.resolveOptional(KindCategory, source.CategoryID),
			Name:         source.Name,
			Description:  source.Description,
			Status:       source.Status,
			Destination:  source.Destination,
		}

		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		table.Register(KindTravelItem, source.ID, item.ID)

		if err := cloneAllocations(tx, table, source.ID, item.ID, models.OwnerTravelItem); err != nil {
			return err
		}
	}

	return nil
}

// cloneAllocations copies the money allocations of a line item. An
// allocation whose money type cannot be resolved within the copied graph is
// skipped: it would otherwise point into the source graph.
func cloneAllocations(tx *gorm.DB, table *Table, sourceOwnerID, newOwnerID uuid.UUID, ownerType string) error {
	var allocations []models.MoneyAllocation
	err := tx.Where("owner_id = ? AND owner_type = ?", sourceOwnerID, ownerType).Find(&allocations).Error
	if err != nil {
		return err
	}

	for _, source := range allocations {
		moneyTypeID, ok := table.Resolve(KindMoneyType, source.MoneyTypeID)
		if !ok {
			log.Warn().
				Str("allocation", source.ID.String()).
				Str("moneyType", source.MoneyTypeID.String()).
				Msg("allocation references a money type outside the fiscal year, skipping")
			continue
		}

		allocation := models.MoneyAllocation{
			OwnerID:         newOwnerID,
			OwnerType:       ownerType,
			MoneyTypeID:     moneyTypeID,
			CapitalAmount:   source.CapitalAmount,
			OperatingAmount: source.OperatingAmount,
		}

		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}
	}

	return nil
}

func cloneSpendingEvents(tx *gorm.DB, table *Table, sourceItemID, newItemID uuid.UUID) error {
	var events []models.SpendingEvent
	if err := tx.Where("spending_item_id = ?", sourceItemID).Find(&events).Error; err != nil {
		return err
	}

	for _, source := range events {
		event := models.SpendingEvent{
			SpendingItemID: newItemID,
			Timestamp:      source.Timestamp,
			EventType:      source.EventType,
			Comment:        source.Comment,
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		table.Register(KindSpendingEvent, source.ID, event.ID)
	}

	return nil
}

func cloneSpendingInvoices(tx *gorm.DB, table *Table, sourceItemID, newItemID uuid.UUID) error {
	var invoices []models.SpendingInvoice
	if err := tx.Where("spending_item_id = ?", sourceItemID).Find(&invoices).Error; err != nil {
		return err
	}

	for _, source := range invoices {
		invoice := models.SpendingInvoice{
			SpendingItemID: newItemID,
			Reference:      source.Reference,
			Amount:         source.Amount,
			InvoiceDate:    source.InvoiceDate,
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		table.Register(KindSpendingInvoice, source.ID, invoice.ID)

		if err := cloneInvoiceFiles(tx, table, source.ID); err != nil {
			return err
		}
	}

	return nil
}

func cloneProcurementEvents(tx *gorm.DB, table *Table, sourceItemID, newItemID uuid.UUID) error {
	var events []models.ProcurementEvent
	if err := tx.Where("procurement_item_id = ?", sourceItemID).Find(&events).Error; err != nil {
		return err
	}

	for _, source := range events {
		event := models.ProcurementEvent{
			ProcurementItemID: newItemID,
			Timestamp:         source.Timestamp,
			EventType:         source.EventType,
			Comment:           source.Comment,
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		table.Register(KindProcurementEvent, source.ID, event.ID)

		if err := cloneEventFiles(tx, table, source.ID); err != nil {
			return err
		}
	}

	return nil
}

func cloneProcurementQuotes(tx *gorm.DB, table *Table, sourceItemID, newItemID uuid.UUID) error {
	var quotes []models.ProcurementQuote
	if err := tx.Where("procurement_item_id = ?", sourceItemID).Find(&quotes).Error; err != nil {
		return err
	}

	for _, source := range quotes {
		quote := models.ProcurementQuote{
			ProcurementItemID: newItemID,
			Vendor:            source.Vendor,
			Amount:            source.Amount,
		}

		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		table.Register(KindProcurementQuote, source.ID, quote.ID)

		if err := cloneQuoteFiles(tx, table, source.ID); err != nil {
			return err
		}
	}

	return nil
}

func cloneQuoteFiles(tx *gorm.DB, table *Table, sourceQuoteID uuid.UUID) error {
	quoteID, ok := table.Resolve(KindProcurementQuote, sourceQuoteID)
	if !ok {
		log.Warn().Str("quote", sourceQuoteID.String()).Msg("quote was not copied, skipping its files")
		return nil
	}

	var files []models.ProcurementQuoteFile
	if err := tx.Where("procurement_quote_id = ?", sourceQuoteID).Find(&files).Error; err != nil {
		return err
	}

	for _, source := range files {
		file := models.ProcurementQuoteFile{
			FileMeta:           source.FileMeta,
			ProcurementQuoteID: quoteID,
			Content:            append([]byte(nil), source.Content...),
		}

		if err := tx.Create(&file).Error; err != nil {
			return err
		}
	}

	return nil
}

func cloneEventFiles(tx *gorm.DB, table *Table, sourceEventID uuid.UUID) error {
	eventID, ok := table.Resolve(KindProcurementEvent, sourceEventID)
	if !ok {
		log.Warn().Str("event", sourceEventID.String()).Msg("event was not copied, skipping its files")
		return nil
	}

	var files []models.ProcurementEventFile
	if err := tx.Where("procurement_event_id = ?", sourceEventID).Find(&files).Error; err != nil {
		return err
	}

	for _, source := range files {
		file := models.ProcurementEventFile{
			FileMeta:           source.FileMeta,
			ProcurementEventID: eventID,
			Content:            append([]byte(nil), source.Content...),
		}

		if err := tx.Create(&file).Error; err != nil {
			return err
		}
	}

	return nil
}

func cloneInvoiceFiles(tx *gorm.DB, table *Table, sourceInvoiceID uuid.UUID) error {
	invoiceID, ok := table.Resolve(KindSpendingInvoice, sourceInvoiceID)
	if !ok {
		log.Warn().Str("invoice", sourceInvoiceID.String()).Msg("invoice was not copied, skipping its files")
		return nil
	}

	var files []models.SpendingInvoiceFile
	if err := tx.Where("spending_invoice_id = ?", sourceInvoiceID).Find(&files).Error; err != nil {
		return err
	}

	for _, source := range files {
		file := models.SpendingInvoiceFile{
			FileMeta:          source.FileMeta,
			SpendingInvoiceID: invoiceID,
			Content:           append([]byte(nil), source.Content...),
		}

		if err := tx.Create(&file).Error; err != nil {
			return err
		}
	}

	return nil
}
