package converter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/pkg/apispec"
	"github.com/goliatone/go-unitconv/pkg/orchestrator"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/runtime"
	"github.com/goliatone/go-unitconv/pkg/units"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code  int
	Field string
	Err   error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type unitResponse struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Symbol string `json:"symbol,omitempty"`
}

type quantityResponse struct {
	Name        string         `json:"name"`
	Kind        units.Kind     `json:"kind"`
	Primary     string         `json:"primary"`
	Secondary   string         `json:"secondary"`
	Description string         `json:"description,omitempty"`
	Units       []unitResponse `json:"units"`
}

type conversionResponse struct {
	Quantity string  `json:"quantity"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Value    float64 `json:"value"`
	Result   float64 `json:"result"`
	Text     string  `json:"text"`
}

type panelRequest struct {
	State  widget.State   `json:"state"`
	Events []widget.Event `json:"events"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the converter handler from a pre-constructed
// Options value. Routes are relative to the mount point:
//
//	GET  /                  full page
//	POST /panel             form posts; fragment when the runtime asks for one
//	GET  /api/quantities    catalog listing
//	GET  /api/convert       one-off conversion
//	POST /api/panel         replay events on a state, JSON in and out
//	GET  /api/openapi.json  API description
//	GET  /runtime/, /assets/ embedded script and stylesheet
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("POST "+mountPath("", opts.PanelPath), h.panel)
	mux.HandleFunc("GET "+mountPath(opts.APIPrefix, "/quantities"), h.quantities)
	mux.HandleFunc("GET "+mountPath(opts.APIPrefix, "/convert"), h.convert)
	mux.HandleFunc("POST "+mountPath(opts.APIPrefix, "/panel"), h.apiPanel)
	mux.HandleFunc("GET "+mountPath(opts.APIPrefix, "/openapi.json"), h.openapi)

	runtimePath := mountPath("", opts.RuntimePath)
	mux.Handle("GET "+runtimePath+"/", http.StripPrefix(runtimePath, http.FileServerFS(runtime.AssetsFS())))
	assetsPath := mountPath("", opts.AssetsPath)
	mux.Handle("GET "+assetsPath+"/", http.StripPrefix(assetsPath, http.FileServerFS(vanilla.AssetsFS())))

	return withRequestLogging(opts.Logger, h.guard(mux))
}

type handler struct {
	opts Options

	specOnce sync.Once
	spec     *apispec.Spec
	specErr  error
}

func (h *handler) guard(next http.Handler) http.Handler {
	if h.opts.Guard == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	req := orchestrator.Request{State: widget.State{Quantity: h.opts.DefaultQuantity}}
	if q := strings.TrimSpace(r.URL.Query().Get(fieldQuantity)); q != "" {
		req.Events = []widget.Event{{Kind: widget.EventQuantity, Value: q}}
	}
	h.renderPanel(w, r, req, false)
}

func (h *handler) panel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(bodyStatus(err)), bodyStatus(err))
		return
	}
	state := stateFromForm(r.PostForm)
	req := orchestrator.Request{
		State:  state,
		Events: eventsFromForm(r.PostForm, state),
	}
	h.renderPanel(w, r, req, r.Header.Get(runtime.FragmentHeader) != "")
}

func (h *handler) renderPanel(w http.ResponseWriter, r *http.Request, req orchestrator.Request, fragment bool) {
	base := h.opts.BasePath
	req.Source = h.opts.Source
	req.Renderer = h.opts.PageRenderer
	req.ThemeName = h.opts.ThemeName
	req.ThemeVariant = h.opts.ThemeVariant
	req.AssetBase = base
	req.RenderOptions.Fragment = fragment
	req.RenderOptions.Action = base + mountPath("", h.opts.PanelPath)
	req.RenderOptions.AssetsPrefix = base + mountPath("", h.opts.RuntimePath)

	result, err := h.opts.Orchestrator.Run(r.Context(), req)
	if err != nil {
		code := statusFor(err)
		h.logFailure(r, code, err)
		http.Error(w, http.StatusText(code), code)
		return
	}
	if result.EventErr != nil {
		h.opts.Logger.Debug("converter: event rejected",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(result.EventErr),
		)
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(result.Output)
}

func (h *handler) quantities(w http.ResponseWriter, r *http.Request) {
	cat, err := h.opts.Orchestrator.Catalog(r.Context(), h.opts.Source)
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}
	out := make([]quantityResponse, 0, cat.Len())
	for _, q := range cat.Quantities() {
		item := quantityResponse{
			Name:        q.Name,
			Kind:        q.Kind,
			Primary:     q.Primary,
			Secondary:   q.Secondary,
			Description: q.Description,
			Units:       make([]unitResponse, 0, len(q.Units)),
		}
		for _, u := range q.Units {
			item.Units = append(item.Units, unitResponse{Key: u.Key, Label: u.DisplayLabel(), Symbol: u.Symbol})
		}
		out = append(out, item)
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := map[string]string{}
	for _, name := range []string{"quantity", "from", "to", "value"} {
		value := strings.TrimSpace(query.Get(name))
		if value == "" {
			h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Field: name, Err: fmt.Errorf("%s is required", name)})
			return
		}
		params[name] = value
	}

	cat, err := h.opts.Orchestrator.Catalog(r.Context(), h.opts.Source)
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}
	q, err := cat.Quantity(params["quantity"])
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusNotFound, Field: "quantity", Err: err})
		return
	}

	// the document enum holds canonical names, the catalog lookup ignores case
	spec, err := h.apiSpec(r.Context())
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}
	if err := spec.ValidateQuantity(q.Name); err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusNotFound, Field: "quantity", Err: units.ErrUnknownQuantity})
		return
	}
	for _, field := range []string{"from", "to"} {
		if !q.HasUnit(params[field]) {
			h.writeError(w, r, StatusError{Code: http.StatusNotFound, Field: field, Err: units.ErrUnknownUnit})
			return
		}
	}

	panel, err := widget.Restore(cat, widget.State{Quantity: q.Name, InputUnit: params["from"], OutputUnit: params["to"]})
	if err != nil {
		h.writeError(w, r, StatusError{Code: statusFor(err), Err: err})
		return
	}
	if err := panel.EditInput(params["value"]); err != nil {
		h.writeError(w, r, StatusError{Code: statusFor(err), Field: "value", Err: err})
		return
	}
	view := panel.View()
	h.writeJSON(w, r, http.StatusOK, conversionResponse{
		Quantity: view.Quantity,
		From:     view.InputUnit,
		To:       view.OutputUnit,
		Value:    view.Input,
		Result:   view.Output,
		Text:     view.Summary(),
	})
}

func (h *handler) apiPanel(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		h.writeError(w, r, StatusError{Code: bodyStatus(err), Err: err})
		return
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode body: %w", err)})
		return
	}
	spec, err := h.apiSpec(r.Context())
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}
	if err := spec.Validate(apispec.SchemaPanelRequest, raw); err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}
	var payload panelRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}

	result, err := h.opts.Orchestrator.Run(r.Context(), orchestrator.Request{
		Source:       h.opts.Source,
		State:        payload.State,
		Events:       payload.Events,
		Renderer:     "json",
		ThemeName:    h.opts.ThemeName,
		ThemeVariant: h.opts.ThemeVariant,
	})
	if err != nil {
		h.writeError(w, r, StatusError{Code: statusFor(err), Field: "state", Err: err})
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

func (h *handler) openapi(w http.ResponseWriter, r *http.Request) {
	spec, err := h.apiSpec(r.Context())
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(spec.JSON())
}

// apiSpec builds the API description for the configured catalog once.
func (h *handler) apiSpec(ctx context.Context) (*apispec.Spec, error) {
	h.specOnce.Do(func() {
		ctx := context.WithoutCancel(ctx)
		cat, err := h.opts.Orchestrator.Catalog(ctx, h.opts.Source)
		if err != nil {
			h.specErr = err
			return
		}
		h.spec, h.specErr = apispec.Build(ctx, cat)
	})
	return h.spec, h.specErr
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err StatusError) {
	code := err.StatusCode()
	h.logFailure(r, code, err)
	h.writeJSON(w, r, code, errorResponse{
		Error:     errorMessage(err),
		Field:     err.Field,
		RequestID: RequestID(r.Context()),
	})
}

func (h *handler) logFailure(r *http.Request, code int, err error) {
	log := h.opts.Logger.Debug
	if code >= http.StatusInternalServerError {
		log = h.opts.Logger.Error
	}
	log("converter: request error",
		zap.String("request_id", RequestID(r.Context())),
		zap.Int("status", code),
		zap.Error(err),
	)
}

func errorMessage(err StatusError) string {
	if err.Err == nil {
		return http.StatusText(err.StatusCode())
	}
	if errors.Is(err.Err, apispec.ErrInvalidPayload) {
		return err.Err.Error()
	}
	return render.Message(err.Err)
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, units.ErrUnknownQuantity),
		errors.Is(err, units.ErrUnknownUnit),
		errors.Is(err, units.ErrInvalidValue),
		errors.Is(err, widget.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
