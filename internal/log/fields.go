package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTicker     = "ticker"
	FieldAssetClass = "asset_class"
	FieldTxType     = "transaction_type"
	FieldAmount     = "amount_cents"
	FieldShares     = "shares_units"
	FieldLedgerRef  = "ledger_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentPortfolio = "portfolio"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentLedger    = "ledger"
	ComponentTemplate  = "template"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpLog      = "log"
	OpSync     = "sync"
	OpValidate = "validate"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTicker adds the ticker field
func (f LogFields) WithTicker(ticker string) LogFields {
	f[FieldTicker] = ticker
	return f
}

// WithAsset adds asset-related fields
func (f LogFields) WithAsset(ticker string, class string, sharesUnits, costCents int64) LogFields {
	f[FieldTicker] = ticker
	f[FieldAssetClass] = class
	f[FieldShares] = sharesUnits
	f[FieldAmount] = costCents
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(ticker, txType string, amountCents int64) LogFields {
	f[FieldTicker] = ticker
	f[FieldTxType] = txType
	f[FieldAmount] = amountCents
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
