package duplicate

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Options control which snapshot items an import processes.
type Options struct {
	// NameGlob filters top-level line items by name, e.g. "Grant*".
	// Items that do not match are skipped silently, they are neither
	// imported nor reported as errors. Empty matches everything.
	NameGlob string
}

// ItemError records why one top-level item was skipped during an import.
type ItemError struct {
	Kind  Kind   `json:"kind"`  // Entity kind of the skipped item
	Name  string `json:"name"`  // Name of the skipped item
	Error string `json:"error"` // What went wrong
}

// Result reports how many top-level items of each kind were imported
// successfully, and the errors for those that were not.
type Result struct {
	FundingItems     int         `json:"fundingItems"`
	SpendingItems    int         `json:"spendingItems"`
	ProcurementItems int         `json:"procurementItems"`
	TrainingItems    int         `json:"trainingItems"`
	TravelItems      int         `json:"travelItems"`
	Errors           []ItemError `json:"errors"`
}

// Import reconstructs the line items of a snapshot under an existing fiscal
// year. Money types and categories are resolved against the target fiscal
// year by code and name: an unknown money type fails the item, an unknown
// category leaves the item uncategorized.
//
// Unlike Clone, Import is not atomic. Every top-level item and its subtree
// is its own unit of work: when one fails, it is rolled back and recorded in
// the result, and the import continues with the next item. A missing target
// fiscal year is the only fatal precondition.
func Import(db *gorm.DB, targetCentreID, targetFiscalYearID uuid.UUID, snapshot Snapshot, opts Options) (Result, error) {
	if snapshot.Metadata.Version > FormatVersion {
		return Result{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, snapshot.Metadata.Version)
	}

	var fiscalYear models.FiscalYear
	err := db.First(&fiscalYear, "id = ? AND responsibility_centre_id = ?", targetFiscalYearID, targetCentreID).Error
	if err != nil {
		return Result{}, err
	}

	imp, err := newImporter(db, fiscalYear.ID)
	if err != nil {
		return Result{}, err
	}

	table := NewTable()
	result := Result{Errors: make([]ItemError, 0)}

	for _, record := range snapshot.FundingItems {
		if skip(opts, record.Name) {
			continue
		}

		err := perItem(db, func(tx *gorm.DB) error { return imp.fundingItem(tx, table, record) })
		if err != nil {
			result.Errors = append(result.Errors, ItemError{KindFundingItem, record.Name, err.Error()})
			continue
		}
		result.FundingItems++
	}

	for _, record := range snapshot.SpendingItems {
		if skip(opts, record.Name) {
			continue
		}

		err := perItem(db, func(tx *gorm.DB) error { return imp.spendingItem(tx, table, record) })
		if err != nil {
			result.Errors = append(result.Errors, ItemError{KindSpendingItem, record.Name, err.Error()})
			continue
		}
		result.SpendingItems++
	}

	for _, record := range snapshot.ProcurementItems {
		if skip(opts, record.Name) {
			continue
		}

		err := perItem(db, func(tx *gorm.DB) error { return imp.procurementItem(tx, table, record) })
		if err != nil {
			result.Errors = append(result.Errors, ItemError{KindProcurementItem, record.Name, err.Error()})
			continue
		}
		result.ProcurementItems++
	}

	for _, record := range snapshot.TrainingItems {
		if skip(opts, record.Name) {
			continue
		}

		err := perItem(db, func(tx *gorm.DB) error { return imp.trainingItem(tx, table, record) })
		if err != nil {
			result.Errors = append(result.Errors, ItemError{KindTrainingItem, record.Name, err.Error()})
			continue
		}
		result.TrainingItems++
	}

	for _, record := range snapshot.TravelItems {
		if skip(opts, record.Name) {
			continue
		}

		err := perItem(db, func(tx *gorm.DB) error { return imp.travelItem(tx, table, record) })
		if err != nil {
			result.Errors = append(result.Errors, ItemError{KindTravelItem, record.Name, err.Error()})
			continue
		}
		result.TravelItems++
	}

	return result, nil
}

// skip reports whether an item name is filtered out by the options.
func skip(opts Options, name string) bool {
	return opts.NameGlob != "" && !glob.Glob(opts.NameGlob, name)
}

// perItem runs fn in its own transaction so that one bad item never rolls
// back the others.
func perItem(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// importer resolves snapshot references against the target fiscal year.
type importer struct {
	fiscalYearID       uuid.UUID
	moneyTypes         []models.MoneyType
	categories         []models.Category
	spendingCategories []models.SpendingCategory
}

func newImporter(db *gorm.DB, fiscalYearID uuid.UUID) (*importer, error) {
	imp := &importer{fiscalYearID: fiscalYearID}

	if err := db.Where("fiscal_year_id = ?", fiscalYearID).Find(&imp.moneyTypes).Error; err != nil {
		return nil, err
	}

	if err := db.Where("fiscal_year_id = ?", fiscalYearID).Find(&imp.categories).Error; err != nil {
		return nil, err
	}

	if err := db.Where("fiscal_year_id = ?", fiscalYearID).Find(&imp.spendingCategories).Error; err != nil {
		return nil, err
	}

	return imp, nil
}

// moneyType resolves a money type code. An unknown code is an error, an
// allocation must reference exactly one money type.
func (imp *importer) moneyType(code string) (uuid.UUID, error) {
	normalized := models.NormalizeMoneyTypeCode(code)

	idx := slices.IndexFunc(imp.moneyTypes, func(m models.MoneyType) bool { return m.Code == normalized })
	if idx == -1 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownMoneyType, code)
	}

	return imp.moneyTypes[idx].ID, nil
}

// category resolves a category name. The reference is optional, an unknown
// name leaves the item uncategorized.
func (imp *importer) category(name string) *uuid.UUID {
	if name == "" {
		return nil
	}

	idx := slices.IndexFunc(imp.categories, func(c models.Category) bool { return c.Name == name })
	if idx == -1 {
		log.Warn().Str("category", name).Msg("snapshot category does not exist in the target fiscal year, importing item without category")
		return nil
	}

	return &imp.categories[idx].ID
}

func (imp *importer) spendingCategory(name string) *uuid.UUID {
	if name == "" {
		return nil
	}

	idx := slices.IndexFunc(imp.spendingCategories, func(c models.SpendingCategory) bool { return c.Name == name })
	if idx == -1 {
		log.Warn().Str("spendingCategory", name).Msg("snapshot spending category does not exist in the target fiscal year, importing item without it")
		return nil
	}

	return &imp.spendingCategories[idx].ID
}

// remapKey returns the snapshot node's identifier as remap key, or a fresh
// placeholder when the snapshot omitted it.
func remapKey(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

func (imp *importer) fundingItem(tx *gorm.DB, table *Table, record FundingItemRecord) error {
	item := models.FundingItem{
		FiscalYearID: imp.fiscalYearID,
		CategoryID:   imp.category(record.Category),
		Name:         record.Name,
		Description:  record.Description,
		Status:       record.Status,
	}

	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	table.Register(KindFundingItem, remapKey(record.ID), item.ID)

	return imp.allocations(tx, record.Allocations, item.ID, models.OwnerFundingItem)
}

func (imp *importer) spendingItem(tx *gorm.DB, table *Table, record SpendingItemRecord) error {
	item := models.SpendingItem{
		FiscalYearID:       imp.fiscalYearID,
		CategoryID:         imp.category(record.Category),
		SpendingCategoryID: imp.spendingCategory(record.SpendingCategory),
		Name:               record.Name,
		Description:        record.Description,
		Status:             record.Status,
	}

	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	table.Register(KindSpendingItem, remapKey(record.ID), item.ID)

	if err := imp.allocations(tx, record.Allocations, item.ID, models.OwnerSpendingItem); err != nil {
		return err
	}

	for _, event := range record.Events {
		e := models.SpendingEvent{
			SpendingItemID: item.ID,
			Timestamp:      event.Timestamp,
			EventType:      event.EventType,
			Comment:        event.Comment,
		}

		if err := tx.Create(&e).Error; err != nil {
			return err
		}
	}

	for _, invoice := range record.Invoices {
		i := models.SpendingInvoice{
			SpendingItemID: item.ID,
			Reference:      invoice.Reference,
			Amount:         invoice.Amount,
			InvoiceDate:    invoice.InvoiceDate,
		}

		if err := tx.Create(&i).Error; err != nil {
			return err
		}
		table.Register(KindSpendingInvoice, remapKey(invoice.ID), i.ID)

		for _, file := range invoice.Files {
			content, ok, err := decodeContent(file)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			f := models.SpendingInvoiceFile{
				FileMeta:          fileMeta(file),
				SpendingInvoiceID: i.ID,
				Content:           content,
			}

			if err := tx.Create(&f).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (imp *importer) procurementItem(tx *gorm.DB, table *Table, record ProcurementItemRecord) error {
	item := models.ProcurementItem{
		FiscalYearID: imp.fiscalYearID,
		CategoryID:   imp.category(record.Category),
		Name:         record.Name,
		Description:  record.Description,
		Status:       record.Status,
		Vendor:       record.Vendor,
	}

	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	table.Register(KindProcurementItem, remapKey(record.ID), item.ID)

	if err := imp.allocations(tx, record.Allocations, item.ID, models.OwnerProcurementItem); err != nil {
		return err
	}

	for _, event := range record.Events {
		e := models.ProcurementEvent{
			ProcurementItemID: item.ID,
			Timestamp:         event.Timestamp,
			EventType:         event.EventType,
			Comment:           event.Comment,
		}

		if err := tx.Create(&e).Error; err != nil {
			return err
		}
		table.Register(KindProcurementEvent, remapKey(event.ID), e.ID)

		for _, file := range event.Files {
			content, ok, err := decodeContent(file)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			f := models.ProcurementEventFile{
				FileMeta:           fileMeta(file),
				ProcurementEventID: e.ID,
				Content:            content,
			}

			if err := tx.Create(&f).Error; err != nil {
				return err
			}
		}
	}

	for _, quote := range record.Quotes {
		q := models.ProcurementQuote{
			ProcurementItemID: item.ID,
			Vendor:            quote.Vendor,
			Amount:            quote.Amount,
		}

		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		table.Register(KindProcurementQuote, remapKey(quote.ID), q.ID)

		for _, file := range quote.Files {
			content, ok, err := decodeContent(file)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			f := models.ProcurementQuoteFile{
				FileMeta:           fileMeta(file),
				ProcurementQuoteID: q.ID,
				Content:            content,
			}

			if err := tx.Create(&f).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (imp *importer) trainingItem(tx *gorm.DB, table *Table, record TrainingItemRecord) error {
	item := models.TrainingItem{
		FiscalYearID: imp.fiscalYearID,
		CategoryID:   imp.category(record.Category),
		Name:         record.Name,
		Description:  record.Description,
		Status:       record.Status,
		Provider:     record.Provider,
	}

	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	table.Register(KindTrainingItem, remapKey(record.ID), item.ID)

	return imp.allocations(tx, record.Allocations, item.ID, models.OwnerTrainingItem)
}

func (imp *importer) travelItem(tx *gorm.DB, table *Table, record TravelItemRecord) error {
	item := models.TravelItem{
		FiscalYearID: imp.fiscalYearID,
		CategoryID:   imp.category(record.Category),
		Name:         record.Name,
		Description:  record.Description,
		Status:       record.Status,
		Destination:  record.Destination,
	}

	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	table.Register(KindTravelItem, remapKey(record.ID), item.ID)

	return imp.allocations(tx, record.Allocations, item.ID, models.OwnerTravelItem)
}

func (imp *importer) allocations(tx *gorm.DB, records []AllocationRecord, ownerID uuid.UUID, ownerType string) error {
	for _, record := range records {
		moneyTypeID, err := imp.moneyType(record.MoneyTypeCode)
		if err != nil {
			return err
		}

		allocation := models.MoneyAllocation{
			OwnerID:         ownerID,
			OwnerType:       ownerType,
			MoneyTypeID:     moneyTypeID,
			CapitalAmount:   record.CapitalAmount,
			OperatingAmount: record.OperatingAmount,
		}

		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}
	}

	return nil
}

// decodeContent decodes an inlined file payload. A null payload means the
// content was not available when the snapshot was written: the file is
// skipped (ok is false) since an attachment without bytes cannot satisfy
// the size invariant. Invalid base64 is an error and fails the item.
func decodeContent(record FileRecord) ([]byte, bool, error) {
	if record.Content == nil {
		log.Warn().Str("file", record.Name).Msg("snapshot file has no content, skipping")
		return nil, false, nil
	}

	content, err := base64.StdEncoding.DecodeString(*record.Content)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidFileContent, record.Name)
	}

	return content, true, nil
}

func fileMeta(record FileRecord) models.FileMeta {
	return models.FileMeta{
		Name:        record.Name,
		ContentType: record.ContentType,
		Size:        record.Size,
		Description: record.Description,
	}
}
