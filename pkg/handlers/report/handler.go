package report

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/de-tools/report-hub/pkg/adapters"
	"github.com/de-tools/report-hub/pkg/export"
	"github.com/de-tools/report-hub/pkg/models/api"
	"github.com/de-tools/report-hub/pkg/models/domain"
	svc "github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	controllers map[string]svc.Controller
	names       []string
	settings    svc.Settings
	fetcher     client.Fetcher
	currency    string
}

func NewHandler(
	controllers map[string]svc.Controller,
	settings svc.Settings,
	fetcher client.Fetcher,
) *Handler {
	names := make([]string, 0, len(controllers))
	for name := range controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Handler{
		controllers: controllers,
		names:       names,
		settings:    settings,
		fetcher:     fetcher,
		currency:    settings.Currency,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	response := make([]api.ReportInfo, 0, len(h.names))
	for _, name := range h.names {
		response = append(response, adapters.MapReportInfoDomainToApi(h.controllers[name].Describe()))
	}
	h.writeJSON(r, w, http.StatusOK, response)
}

func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	name := chi.URLParam(r, "report")
	ctrl, ok := h.controllers[name]
	if !ok {
		h.writeJSON(r, w, http.StatusNotFound, api.Error{Error: "unknown report " + name})
		return
	}

	page, err := ctrl.Run(ctx, h.parseQuery(r, ctrl.Describe()))
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("report run failed")
		h.writeJSON(r, w, http.StatusBadGateway, api.Error{Error: err.Error()})
		return
	}

	h.writeJSON(r, w, http.StatusOK, adapters.MapReportPageDomainToApi(page))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	name := chi.URLParam(r, "report")
	ctrl, ok := h.controllers[name]
	if !ok {
		h.writeJSON(r, w, http.StatusNotFound, api.Error{Error: "unknown report " + name})
		return
	}

	// Exports ignore pagination entirely.
	q := h.parseQuery(r, ctrl.Describe())
	q.Page = 0
	q.PageSize = 0

	exp, err := ctrl.Export(ctx, q)
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("report export failed")
		h.writeJSON(r, w, http.StatusBadGateway, api.Error{Error: err.Error()})
		return
	}

	h.writeJSON(r, w, http.StatusOK, adapters.MapReportExportDomainToApi(exp))
}

// RenderInvoice builds a printable document from the posted request, pricing
// lines against the live inventory read.
func (h *Handler) RenderInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(r, w, http.StatusBadRequest, api.Error{Error: "invalid invoice request"})
		return
	}

	payload, err := h.fetcher.ReadTables(ctx, "inventory")
	if err != nil {
		logger.Error().Err(err).Msg("inventory read failed")
		h.writeJSON(r, w, http.StatusBadGateway, api.Error{Error: err.Error()})
		return
	}

	doc := export.BuildInvoice(adapters.MapInvoiceRequestApiToExport(req, h.currency), export.NewPriceList(payload))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w); err != nil {
		logger.Error().Err(err).Str("number", req.Number).Msg("failed to render document")
	}
}

// parseQuery turns the request's query string into the report's view state.
// Everything is lenient: bad dates fall back to the default window, an
// off-list page size snaps to the default, unknown filter keys are ignored.
func (h *Handler) parseQuery(r *http.Request, info domain.ReportInfo) domain.ReportQuery {
	values := r.URL.Query()

	from := parseDate(values.Get("from"))
	to := parseDate(values.Get("to"))
	if from.IsZero() && to.IsZero() {
		to = time.Now().UTC().Truncate(24 * time.Hour)
		from = to.AddDate(0, 0, -(h.settings.DefaultWindowDays - 1))
	}

	direction := domain.SortAsc
	if values.Get("dir") == string(domain.SortDesc) {
		direction = domain.SortDesc
	}

	page, _ := strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(values.Get("page_size"))
	size = h.settings.NormalizePageSize(size)

	filters := make(map[string]string)
	for _, key := range info.FilterKeys {
		if v := values.Get(key); v != "" {
			filters[key] = v
		}
	}

	return domain.ReportQuery{
		From:      from,
		To:        to,
		Search:    values.Get("search"),
		Filters:   filters,
		SortKey:   values.Get("sort"),
		Direction: direction,
		Page:      page,
		PageSize:  size,
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (h *Handler) writeJSON(r *http.Request, w http.ResponseWriter, status int, body any) {
	logger := zerolog.Ctx(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to encode response")
	}
}
