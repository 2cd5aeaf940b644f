package duplicate

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Export serializes the line items of a fiscal year into a self-contained
// snapshot. The source is only read, never modified.
//
// A file payload that cannot be retrieved does not abort the export: the
// file's metadata is still included and its content is an explicit null.
func Export(db *gorm.DB, fiscalYearID uuid.UUID, exportedBy string) (Snapshot, error) {
	var fiscalYear models.FiscalYear
	err := db.Preload("ResponsibilityCentre").First(&fiscalYear, "id = ?", fiscalYearID).Error
	if err != nil {
		return Snapshot{}, err
	}

	e := exporter{
		db:     db,
		counts: make(map[Kind]int),
	}

	if err := e.loadLookups(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Metadata: Metadata{
			Version:      FormatVersion,
			ExportedBy:   exportedBy,
			ExportedAt:   time.Now().In(time.UTC),
			SourceRCID:   fiscalYear.ResponsibilityCentreID,
			SourceRCName: fiscalYear.ResponsibilityCentre.Name,
			SourceFYID:   fiscalYear.ID,
			SourceFYName: fiscalYear.Name,
			CountsByKind: e.counts,
		},
	}

	if snapshot.FundingItems, err = e.fundingItems(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	if snapshot.SpendingItems, err = e.spendingItems(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	if snapshot.ProcurementItems, err = e.procurementItems(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	if snapshot.TrainingItems, err = e.trainingItems(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	if snapshot.TravelItems, err = e.travelItems(fiscalYearID); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// exporter carries the per-call lookup tables and counters.
type exporter struct {
	db     *gorm.DB
	counts map[Kind]int

	moneyTypeCodes        map[uuid.UUID]string
	categoryNames         map[uuid.UUID]string
	spendingCategoryNames map[uuid.UUID]string
}

// loadLookups builds the identifier to code/name lookups for the source
// fiscal year. Snapshots reference money types and categories by code and
// name so that they stay portable across database instances.
func (e *exporter) loadLookups(fiscalYearID uuid.UUID) error {
	var moneyTypes []models.MoneyType
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&moneyTypes).Error; err != nil {
		return err
	}

	e.moneyTypeCodes = make(map[uuid.UUID]string, len(moneyTypes))
	for _, moneyType := range moneyTypes {
		e.moneyTypeCodes[moneyType.ID] = moneyType.Code
	}

	var categories []models.Category
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&categories).Error; err != nil {
		return err
	}

	e.categoryNames = make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		e.categoryNames[category.ID] = category.Name
	}

	var spendingCategories []models.SpendingCategory
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&spendingCategories).Error; err != nil {
		return err
	}

	e.spendingCategoryNames = make(map[uuid.UUID]string, len(spendingCategories))
	for _, category := range spendingCategories {
		e.spendingCategoryNames[category.ID] = category.Name
	}

	return nil
}

// categoryName resolves an optional category reference to its name.
func (e *exporter) categoryName(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return e.categoryNames[*id]
}

func (e *exporter) itemRecord(id uuid.UUID, name, description string, status models.ItemStatus, categoryID *uuid.UUID, ownerType string) (ItemRecord, error) {
	allocations, err := e.allocations(id, ownerType)
	if err != nil {
		return ItemRecord{}, err
	}

	return ItemRecord{
		ID:          id,
		Name:        name,
		Description: description,
		Status:      status,
		Category:    e.categoryName(categoryID),
		Allocations: allocations,
	}, nil
}

func (e *exporter) fundingItems(fiscalYearID uuid.UUID) ([]FundingItemRecord, error) {
	var items []models.FundingItem
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&items).Error; err != nil {
		return nil, err
	}

	records := make([]FundingItemRecord, 0, len(items))
	for _, item := range items {
		record, err := e.itemRecord(item.ID, item.Name, item.Description, item.Status, item.CategoryID, models.OwnerFundingItem)
		if err != nil {
			return nil, err
		}

		records = append(records, FundingItemRecord{ItemRecord: record})
		e.counts[KindFundingItem]++
	}

	return records, nil
}

func (e *exporter) spendingItems(fiscalYearID uuid.UUID) ([]SpendingItemRecord, error) {
	var items []models.SpendingItem
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&items).Error; err != nil {
		return nil, err
	}

	records := make([]SpendingItemRecord, 0, len(items))
	for _, item := range items {
		record, err := e.itemRecord(item.ID, item.Name, item.Description, item.Status, item.CategoryID, models.OwnerSpendingItem)
		if err != nil {
			return nil, err
		}

		spendingCategory := ""
		if item.SpendingCategoryID != nil {
			spendingCategory = e.spendingCategoryNames[*item.SpendingCategoryID]
		}

		events, err := e.spendingEvents(item.ID)
		if err != nil {
			return nil, err
		}

		invoices, err := e.invoices(item.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, SpendingItemRecord{
			ItemRecord:       record,
			SpendingCategory: spendingCategory,
			Events:           events,
			Invoices:         invoices,
		})
		e.counts[KindSpendingItem]++
	}

	return records, nil
}

func (e *exporter) procurementItems(fiscalYearID uuid.UUID) ([]ProcurementItemRecord, error) {
	var items []models.ProcurementItem
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&items).Error; err != nil {
		return nil, err
	}

	records := make([]ProcurementItemRecord, 0, len(items))
	for _, item := range items {
		record, err := e.itemRecord(item.ID, item.Name, item.Description, item.Status, item.CategoryID, models.OwnerProcurementItem)
		if err != nil {
			return nil, err
		}

		events, err := e.procurementEvents(item.ID)
		if err != nil {
			return nil, err
		}

		quotes, err := e.quotes(item.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, ProcurementItemRecord{
			ItemRecord: record,
			Vendor:     item.Vendor,
			Events:     events,
			Quotes:     quotes,
		})
		e.counts[KindProcurementItem]++
	}

	return records, nil
}

func (e *exporter) trainingItems(fiscalYearID uuid.UUID) ([]TrainingItemRecord, error) {
	var items []models.TrainingItem
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&items).Error; err != nil {
		return nil, err
	}

	records := make([]TrainingItemRecord, 0, len(items))
	for _, item := range items {
		record, err := e.itemRecord(item.ID, item.Name, item.Description, item.Status, item.CategoryID, models.OwnerTrainingItem)
		if err != nil {
			return nil, err
		}

		records = append(records, TrainingItemRecord{ItemRecord: record, Provider: item.Provider})
		e.counts[KindTrainingItem]++
	}

	return records, nil
}

func (e *exporter) travelItems(fiscalYearID uuid.UUID) ([]TravelItemRecord, error) {
	var items []models.TravelItem
	if err := e.db.Where("fiscal_year_id = ?", fiscalYearID).Find(&items).Error; err != nil {
		return nil, err
	}

	records := make([]TravelItemRecord, 0, len(items))
	for _, item := range items {
		record, err := e.itemRecord(item.ID, item.Name, item.Description, item.Status, item.CategoryID, models.OwnerTravelItem)
		if err != nil {
			return nil, err
		}

		records = append(records, TravelItemRecord{ItemRecord: record, Destination: item.Destination})
		e.counts[KindTravelItem]++
	}

	return records, nil
}

func (e *exporter) allocations(ownerID uuid.UUID, ownerType string) ([]AllocationRecord, error) {
	var allocations []models.MoneyAllocation
	err := e.db.Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	records := make([]AllocationRecord, 0, len(allocations))
	for _, allocation := range allocations {
		code, ok := e.moneyTypeCodes[allocation.MoneyTypeID]
		if !ok {
			log.Warn().
				Str("allocation", allocation.ID.String()).
				Str("moneyType", allocation.MoneyTypeID.String()).
				Msg("allocation references a money type outside the fiscal year, skipping")
			continue
		}

		records = append(records, AllocationRecord{
			MoneyTypeCode:   code,
			CapitalAmount:   allocation.CapitalAmount,
			OperatingAmount: allocation.OperatingAmount,
		})
		e.counts[KindMoneyAllocation]++
	}

	return records, nil
}

func (e *exporter) spendingEvents(itemID uuid.UUID) ([]EventRecord, error) {
	var events []models.SpendingEvent
	if err := e.db.Where("spending_item_id = ?", itemID).Find(&events).Error; err != nil {
		return nil, err
	}

	records := make([]EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, EventRecord{
			Timestamp: event.Timestamp,
			EventType: event.EventType,
			Comment:   event.Comment,
		})
		e.counts[KindSpendingEvent]++
	}

	return records, nil
}

func (e *exporter) invoices(itemID uuid.UUID) ([]InvoiceRecord, error) {
	var invoices []models.SpendingInvoice
	if err := e.db.Where("spending_item_id = ?", itemID).Find(&invoices).Error; err != nil {
		return nil, err
	}

	records := make([]InvoiceRecord, 0, len(invoices))
	for _, invoice := range invoices {
		files, err := e.invoiceFiles(invoice.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, InvoiceRecord{
			ID:          invoice.ID,
			Reference:   invoice.Reference,
			Amount:      invoice.Amount,
			InvoiceDate: invoice.InvoiceDate,
			Files:       files,
		})
		e.counts[KindSpendingInvoice]++
	}

	return records, nil
}

func (e *exporter) procurementEvents(itemID uuid.UUID) ([]ProcurementEventRecord, error) {
	var events []models.ProcurementEvent
	if err := e.db.Where("procurement_item_id = ?", itemID).Find(&events).Error; err != nil {
		return nil, err
	}

	records := make([]ProcurementEventRecord, 0, len(events))
	for _, event := range events {
		files, err := e.eventFiles(event.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, ProcurementEventRecord{
			ID: event.ID,
			EventRecord: EventRecord{
				Timestamp: event.Timestamp,
				EventType: event.EventType,
				Comment:   event.Comment,
			},
			Files: files,
		})
		e.counts[KindProcurementEvent]++
	}

	return records, nil
}

func (e *exporter) quotes(itemID uuid.UUID) ([]QuoteRecord, error) {
	var quotes []models.ProcurementQuote
	if err := e.db.Where("procurement_item_id = ?", itemID).Find(&quotes).Error; err != nil {
		return nil, err
	}

	records := make([]QuoteRecord, 0, len(quotes))
	for _, quote := range quotes {
		files, err := e.quoteFiles(quote.ID)
		if err != nil {
			return nil, err
		}

		records = append(records, QuoteRecord{
			ID:     quote.ID,
			Vendor: quote.Vendor,
			Amount: quote.Amount,
			Files:  files,
		})
		e.counts[KindProcurementQuote]++
	}

	return records, nil
}

func (e *exporter) quoteFiles(quoteID uuid.UUID) ([]FileRecord, error) {
	var files []models.ProcurementQuoteFile
	err := e.db.Omit("content").Where("procurement_quote_id = ?", quoteID).Find(&files).Error
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0, len(files))
	for _, file := range files {
		var loaded models.ProcurementQuoteFile
		err := e.db.Select("content").First(&loaded, "id = ?", file.ID).Error

		records = append(records, fileRecord(file.FileMeta, loaded.Content, err))
		e.counts[KindProcurementQuoteFile]++
	}

	return records, nil
}

func (e *exporter) eventFiles(eventID uuid.UUID) ([]FileRecord, error) {
	var files []models.ProcurementEventFile
	err := e.db.Omit("content").Where("procurement_event_id = ?", eventID).Find(&files).Error
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0, len(files))
	for _, file := range files {
		var loaded models.ProcurementEventFile
		err := e.db.Select("content").First(&loaded, "id = ?", file.ID).Error

		records = append(records, fileRecord(file.FileMeta, loaded.Content, err))
		e.counts[KindProcurementEventFile]++
	}

	return records, nil
}

func (e *exporter) invoiceFiles(invoiceID uuid.UUID) ([]FileRecord, error) {
	var files []models.SpendingInvoiceFile
	err := e.db.Omit("content").Where("spending_invoice_id = ?", invoiceID).Find(&files).Error
	if err != nil {
		return nil, err
	}

	records := make([]FileRecord, 0, len(files))
	for _, file := range files {
		var loaded models.SpendingInvoiceFile
		err := e.db.Select("content").First(&loaded, "id = ?", file.ID).Error

		records = append(records, fileRecord(file.FileMeta, loaded.Content, err))
		e.counts[KindSpendingInvoiceFile]++
	}

	return records, nil
}

// fileRecord builds the snapshot record for one file. When the payload
// could not be read, the metadata is kept and the content is an explicit
// null so that the rest of the export survives a single bad blob.
func fileRecord(meta models.FileMeta, content []byte, err error) FileRecord {
	record := FileRecord{
		Name:        meta.Name,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		Description: meta.Description,
	}

	if err != nil {
		log.Warn().Err(err).Str("file", meta.Name).Msg("could not read file content, exporting metadata only")
		return record
	}

	encoded := base64.StdEncoding.EncodeToString(content)
	record.Content = &encoded

	return record
}
