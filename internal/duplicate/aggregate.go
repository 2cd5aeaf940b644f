// Package duplicate copies whole fiscal year aggregates.
//
// A fiscal year and everything it transitively owns form an aggregate: money
// types, categories, line items, their allocations, events, quotes, invoices
// and file attachments. The package produces independent copies of such an
// aggregate in two ways: Clone writes the copy into the same database under
// a new responsibility centre, Export and Import move it through a portable,
// self-contained snapshot document.
//
// Both drivers walk the aggregate in the same fixed dependency order, so a
// parent's new identifier is always known before its children are created.
// Cross-references (a line item's category, an allocation's money type) are
// rewritten through a per-call remap table, never carried over from the
// source graph.
package duplicate

// Kind identifies an entity kind of the fiscal year aggregate.
type Kind string

const (
	KindFiscalYear           Kind = "FiscalYear"
	KindMoneyType            Kind = "MoneyType"
	KindCategory             Kind = "Category"
	KindSpendingCategory     Kind = "SpendingCategory"
	KindFundingItem          Kind = "FundingItem"
	KindSpendingItem         Kind = "SpendingItem"
	KindProcurementItem      Kind = "ProcurementItem"
	KindTrainingItem         Kind = "TrainingItem"
	KindTravelItem           Kind = "TravelItem"
	KindMoneyAllocation      Kind = "MoneyAllocation"
	KindSpendingEvent        Kind = "SpendingEvent"
	KindSpendingInvoice      Kind = "SpendingInvoice"
	KindSpendingInvoiceFile  Kind = "SpendingInvoiceFile"
	KindProcurementEvent     Kind = "ProcurementEvent"
	KindProcurementEventFile Kind = "ProcurementEventFile"
	KindProcurementQuote     Kind = "ProcurementQuote"
	KindProcurementQuoteFile Kind = "ProcurementQuoteFile"
)

// LineItemKinds are the top-level line item kinds in processing order.
var LineItemKinds = []Kind{
	KindFundingItem,
	KindSpendingItem,
	KindProcurementItem,
	KindTrainingItem,
	KindTravelItem,
}

// childKinds maps every kind to its child kinds in processing order.
// Money types, categories and spending categories come before the line
// items that reference them.
var childKinds = map[Kind][]Kind{
	KindFiscalYear: {
		KindMoneyType,
		KindCategory,
		KindSpendingCategory,
		KindFundingItem,
		KindSpendingItem,
		KindProcurementItem,
		KindTrainingItem,
		KindTravelItem,
	},
	KindFundingItem:      {KindMoneyAllocation},
	KindSpendingItem:     {KindMoneyAllocation, KindSpendingEvent, KindSpendingInvoice},
	KindProcurementItem:  {KindMoneyAllocation, KindProcurementEvent, KindProcurementQuote},
	KindTrainingItem:     {KindMoneyAllocation},
	KindTravelItem:       {KindMoneyAllocation},
	KindSpendingInvoice:  {KindSpendingInvoiceFile},
	KindProcurementEvent: {KindProcurementEventFile},
	KindProcurementQuote: {KindProcurementQuoteFile},
}

// ChildKinds returns the child kinds of a kind in processing order.
// Kinds without children return an empty slice.
func ChildKinds(k Kind) []Kind {
	return childKinds[k]
}

// Reference describes a cross-reference field of a kind, i.e. a foreign key
// that points somewhere else in the aggregate than the owning parent.
// Parent edges are described by childKinds, not here.
type Reference struct {
	Field    string // Go field name holding the reference
	Kind     Kind   // Referenced entity kind
	Optional bool   // May the reference be absent?
}

// references lists the cross-reference fields per kind. Every referenced
// kind appears earlier in the dependency order than the referencing kind,
// so its remap entries exist when the reference is resolved.
var references = map[Kind][]Reference{
	KindFundingItem:     {{Field: "CategoryID", Kind: KindCategory, Optional: true}},
	KindSpendingItem:    {{Field: "CategoryID", Kind: KindCategory, Optional: true}, {Field: "SpendingCategoryID", Kind: KindSpendingCategory, Optional: true}},
	KindProcurementItem: {{Field: "CategoryID", Kind: KindCategory, Optional: true}},
	KindTrainingItem:    {{Field: "CategoryID", Kind: KindCategory, Optional: true}},
	KindTravelItem:      {{Field: "CategoryID", Kind: KindCategory, Optional: true}},
	KindMoneyAllocation: {{Field: "MoneyTypeID", Kind: KindMoneyType}},
}

// References returns the cross-reference fields of a kind.
func References(k Kind) []Reference {
	return references[k]
}
