package http

import (
	"errors"
	"html/template"
	"net/http"
	"sync/atomic"

	"folio/internal/core"
	"folio/internal/log"
)

// handleTransactions serves the Transactions page and transaction logging.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionsPage(w, r)
	case http.MethodPost:
		s.handleLogTransaction(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) handleTransactionsPage(w http.ResponseWriter, r *http.Request) {
	assets, err := s.service.ListAssets(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List assets error", log.FieldError, err)
	}

	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.Ticker)
	}

	s.render(w, r, "transactions.html", struct {
		Tickers []string
		Types   []core.TransactionType
	}{Tickers: tickers, Types: core.TransactionTypes()})
}

func (s *Server) handleLogTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ticker := core.NormalizeTicker(formValue(r, "ticker"))
	if ticker == "" {
		UnprocessableEntityError("Ticker is required").Write(w)
		return
	}

	// The form only offers existing tickers, but the row may have been
	// deleted between page load and submit.
	if _, err := s.service.GetAsset(r.Context(), ticker); err != nil {
		if errors.Is(err, core.ErrAssetNotFound) {
			UnprocessableEntityError("No asset with ticker " + ticker).Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Get asset error",
			log.FieldError, err, log.FieldTicker, ticker)
		InternalServerError("Error validating ticker").Write(w)
		return
	}

	txType := core.TransactionType(formValue(r, "type"))
	if !txType.Valid() {
		UnprocessableEntityError("Unknown transaction type").Write(w)
		return
	}

	amount, err := core.ParseSignedMoney(formValue(r, "amount"))
	if err != nil {
		UnprocessableEntityError("Amount must be a non-zero number").Write(w)
		return
	}

	// The transaction date is assigned by the service at logging time.
	tx := core.Transaction{
		Ticker: ticker,
		Type:   txType,
		Amount: amount,
		Notes:  formValue(r, "notes"),
	}
	if err := tx.Validate(); err != nil {
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	if _, err := s.service.LogTransaction(r.Context(), tx); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to log transaction",
			log.FieldError, err, log.FieldTicker, ticker)
		InternalServerError("Error saving transaction").Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.transactionsLogged, 1)

	NewHTMXResponse().
		TriggerTransactionLogged(ticker).
		TriggerFormReset().
		TriggerSuccessNotification(string(txType) + " logged for " + ticker).
		BodyHTML(`<div class="success">` + template.HTMLEscapeString(string(txType)) +
			` of ` + template.HTMLEscapeString(formatDollars(tx.Amount.Cents)) +
			` logged for ` + template.HTMLEscapeString(ticker) + `</div>`).
		Write(w)
}

// handleTransactionTablePartial renders the full transaction history.
func (s *Server) handleTransactionTablePartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	txs, err := s.service.ListTransactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List transactions error", log.FieldError, err)
		InternalServerError("Error loading transactions").Write(w)
		return
	}

	type row struct {
		Date   string
		Ticker string
		Type   string
		Amount string
		Notes  string
	}
	rows := make([]row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, row{
			Date:   tx.Date.Format("2006-01-02"),
			Ticker: tx.Ticker,
			Type:   string(tx.Type),
			Amount: formatDollars(tx.Amount.Cents),
			Notes:  tx.Notes,
		})
	}

	s.render(w, r, "transaction_table", struct {
		HasTransactions bool
		Rows            []row
	}{HasTransactions: len(rows) > 0, Rows: rows})
}
