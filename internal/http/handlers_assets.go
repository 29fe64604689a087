package http

import (
	"errors"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"folio/internal/core"
	"folio/internal/log"
)

type assetFormData struct {
	Ticker       string
	PurchaseDate string
	Shares       string
	CostBasis    string
	Class        string
	Classes      []core.AssetClass
	Found        bool
}

// handleAssets serves the Manage Assets page and asset creation.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "assets.html", struct {
			Classes []core.AssetClass
			Today   string
		}{Classes: core.AssetClasses(), Today: time.Now().Format("2006-01-02")})
	case http.MethodPost:
		s.handleCreateAsset(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// parseAssetForm builds an asset from form fields, returning an error
// response for anything the domain would reject.
func parseAssetForm(r *http.Request) (core.Asset, *HTMXResponseBuilder) {
	ticker := core.NormalizeTicker(formValue(r, "ticker"))
	if ticker == "" {
		return core.Asset{}, UnprocessableEntityError("Ticker is required")
	}

	purchaseDate := core.Date{Time: time.Now()}
	if v := formValue(r, "purchase_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return core.Asset{}, UnprocessableEntityError("Invalid purchase date")
		}
		purchaseDate = d
	}

	shares, err := core.ParseQuantity(formValue(r, "shares"))
	if err != nil {
		return core.Asset{}, UnprocessableEntityError("Shares must be a positive number")
	}

	costBasis, err := core.ParseMoney(formValue(r, "cost_basis"))
	if err != nil {
		return core.Asset{}, UnprocessableEntityError("Cost basis must be a positive amount")
	}

	class := core.AssetClass(formValue(r, "class"))
	if !class.Valid() {
		return core.Asset{}, UnprocessableEntityError("Unknown asset class")
	}

	a := core.Asset{
		Ticker:       ticker,
		PurchaseDate: purchaseDate,
		Shares:       shares,
		CostBasis:    costBasis,
		Class:        class,
	}
	if err := a.Validate(); err != nil {
		return core.Asset{}, UnprocessableEntityError("Invalid data: " + err.Error())
	}
	return a, nil
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	a, errResp := parseAssetForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	if err := s.service.CreateAsset(r.Context(), a); err != nil {
		if errors.Is(err, core.ErrAssetExists) {
			ConflictError("An asset with ticker " + a.Ticker + " already exists").
				TriggerErrorNotification("Asset " + a.Ticker + " already exists").
				Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to create asset",
			log.FieldError, err, log.FieldTicker, a.Ticker)
		InternalServerError("Error saving asset").Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.assetsCreated, 1)

	NewHTMXResponse().
		TriggerAssetCreated(a.Ticker).
		TriggerFormReset().
		TriggerSuccessNotification("Asset " + a.Ticker + " added").
		BodyHTML(`<div class="success">Asset ` + template.HTMLEscapeString(a.Ticker) + ` added to portfolio</div>`).
		Write(w)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	originalTicker := core.NormalizeTicker(formValue(r, "original_ticker"))
	if originalTicker == "" {
		UnprocessableEntityError("Select an asset to update").Write(w)
		return
	}

	a, errResp := parseAssetForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	if err := s.service.UpdateAsset(r.Context(), originalTicker, a); err != nil {
		if errors.Is(err, core.ErrAssetNotFound) {
			NotFoundError("Asset " + originalTicker + " not found").Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to update asset",
			log.FieldError, err, log.FieldTicker, originalTicker)
		InternalServerError("Error updating asset").Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.assetsUpdated, 1)

	NewHTMXResponse().
		TriggerAssetUpdated(a.Ticker).
		TriggerSuccessNotification("Asset " + a.Ticker + " updated").
		BodyHTML(`<div class="success">Asset ` + template.HTMLEscapeString(a.Ticker) + ` updated</div>`).
		Write(w)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ticker := core.NormalizeTicker(formValue(r, "ticker"))
	if ticker == "" {
		UnprocessableEntityError("Select an asset to delete").Write(w)
		return
	}

	if err := s.service.DeleteAsset(r.Context(), ticker); err != nil {
		if errors.Is(err, core.ErrAssetNotFound) {
			NotFoundError("Asset " + ticker + " not found").Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to delete asset",
			log.FieldError, err, log.FieldTicker, ticker)
		InternalServerError("Error deleting asset").Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.assetsDeleted, 1)

	NewHTMXResponse().
		TriggerAssetDeleted(ticker).
		TriggerSuccessNotification("Asset " + ticker + " and its transactions removed").
		BodyHTML(`<div class="success">Asset ` + template.HTMLEscapeString(ticker) + ` deleted</div>`).
		Write(w)
}

// handleAssetTablePartial renders the holdings table.
func (s *Server) handleAssetTablePartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	assets, err := s.service.ListAssets(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List assets error", log.FieldError, err)
		InternalServerError("Error loading assets").Write(w)
		return
	}

	type row struct {
		Ticker       string
		PurchaseDate string
		Shares       string
		CostBasis    string
		Class        string
	}
	rows := make([]row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, row{
			Ticker:       a.Ticker,
			PurchaseDate: a.PurchaseDate.Format("2006-01-02"),
			Shares:       a.Shares.String(),
			CostBasis:    formatDollars(a.CostBasis.Cents),
			Class:        string(a.Class),
		})
	}

	s.render(w, r, "asset_table", struct {
		HasAssets bool
		Rows      []row
	}{HasAssets: len(rows) > 0, Rows: rows})
}

// handleAssetFormPartial renders the update/delete form, pre-populated when
// a ticker is selected.
func (s *Server) handleAssetFormPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := assetFormData{Classes: core.AssetClasses()}

	if ticker := core.NormalizeTicker(r.URL.Query().Get("ticker")); ticker != "" {
		a, err := s.service.GetAsset(r.Context(), ticker)
		switch {
		case err == nil:
			data.Found = true
			data.Ticker = a.Ticker
			data.PurchaseDate = a.PurchaseDate.Format("2006-01-02")
			data.Shares = a.Shares.String()
			data.CostBasis = a.CostBasis.String()
			data.Class = string(a.Class)
		case errors.Is(err, core.ErrAssetNotFound):
			// fall through to the empty form
		default:
			s.logger.ErrorContext(r.Context(), "Get asset error",
				log.FieldError, err, log.FieldTicker, ticker)
			InternalServerError("Error loading asset").Write(w)
			return
		}
	}

	s.render(w, r, "asset_form", data)
}
