package log

// Common field names for structured logging
const (
	FieldComponent       = "component"
	FieldError           = "error"
	FieldOperation       = "operation"
	FieldContributionID  = "contribution_id"
	FieldContributorName = "contributor_name"
	FieldZakatKind       = "zakat_kind"
	FieldAmount          = "amount"
	FieldRiceTypeID      = "rice_type_id"
	FieldRiceTypeName    = "rice_type_name"
	FieldPricePerKg      = "price_per_kg"
	FieldQuantityKg      = "quantity_kg"
	FieldTotalPrice      = "total_price"
	FieldDate            = "date"
	FieldFile            = "file"
	FieldBackend         = "backend"
	FieldRows            = "rows"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentCatalog = "catalog"
	ComponentTx      = "transactions"
	ComponentExport  = "export"
)
