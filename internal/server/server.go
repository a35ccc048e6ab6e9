// Package server exposes the forecast engine over a small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/internal/report"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/events"
	"github.com/iwvelando/homeowner-forecast/pkg/loans"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
	"github.com/iwvelando/homeowner-forecast/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	maxBatchRuns  int
	version       string
	now           func() time.Time
}

type simulateOptions struct {
	Monthly     bool
	Batch       bool
	IncludeRuns bool
}

// NewHandler constructs the HTTP handler that serves the simulation API. A nil cfg
// uses the server defaults.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = defaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: cfg.UploadSizeBytes(),
		maxBatchRuns:  cfg.MaxBatchRuns,
		version:       trimmedVersion,
		now:           time.Now,
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if h.maxBatchRuns <= 0 {
		h.maxBatchRuns = DefaultMaxBatchRuns
	}

	mux := http.NewServeMux()

	// Simulation from an uploaded YAML file
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Simulation from editor-supplied JSON
	mux.HandleFunc("/api/editor/simulate", h.handleSimulateEditor)

	// Config serialization for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Mortgage amortization schedule
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// New builds an http.Server for cfg.
func New(logger *zap.Logger, cfg *Config, version string) *http.Server {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      NewHandler(logger, cfg, version),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

type simulateResponse struct {
	Report     *report.Report         `json:"report,omitempty"`
	Batch      *report.BatchSummary   `json:"batch,omitempty"`
	CSV        string                 `json:"csv"`
	Seed       int64                  `json:"seed"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type scheduleRequest struct {
	Name         string             `json:"name"`
	StartDate    string             `json:"startDate"`
	Principal    float64            `json:"principal"`
	InterestRate float64            `json:"interestRate"`
	TermYears    float64            `json:"termYears"`
	Parameters   *config.Parameters `json:"parameters,omitempty"`
}

type scheduleResponse struct {
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	Payments       []loans.Payment `json:"payments"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	opts := simulateOptions{
		Monthly:     coerceBool(r.FormValue("monthly")),
		Batch:       coerceBool(r.FormValue("batch")),
		IncludeRuns: coerceBool(r.FormValue("includeRuns")),
	}
	h.runSimulation(w, configBytes, configMap, start, op, opts)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSimulateEditor(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulateEditor"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		configPayload = cfgMap
	}

	var opts simulateOptions
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid options payload: expected object", op)
			return
		}
		opts.Monthly = coerceBool(optsMap["monthly"])
		opts.Batch = coerceBool(optsMap["batch"])
		opts.IncludeRuns = coerceBool(optsMap["includeRuns"])
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return
	}

	h.runSimulation(w, configBytes, configMap, start, op, opts)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode schedule request: %v", err), op)
		return
	}

	loan := loans.LoanConfig{
		Name:         req.Name,
		StartDate:    req.StartDate,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TermYears:    req.TermYears,
	}
	if req.Parameters != nil {
		loan = req.Parameters.Mortgage()
	}
	if loan.Name == "" {
		loan.Name = "mortgage"
	}

	schedule, err := loans.NewScheduleGenerator(h.logger).Generate(loan)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	resp := scheduleResponse{Payments: schedule, TotalInterest: report.Money(loans.TotalInterest(schedule))}
	if len(schedule) > 0 {
		resp.MonthlyPayment = report.Money(schedule[0].Payment)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) decodePayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "simulation", "parameters"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runSimulation(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts simulateOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := cfg.Normalize(h.now()); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = events.NewSeed()
	}

	response := simulateResponse{
		Seed:       seed,
		Warnings:   warnings,
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}
	if response.Config == nil {
		response.Config = make(map[string]interface{})
	}

	var csvBuf bytes.Buffer
	if opts.Batch {
		if cfg.Simulation.Runs > h.maxBatchRuns {
			h.respondError(w, http.StatusBadRequest,
				fmt.Sprintf("batch of %d runs exceeds limit of %d", cfg.Simulation.Runs, h.maxBatchRuns), op)
			return
		}
		batch, err := forecast.RunBatch(h.logger, cfg.Parameters, cfg.Simulation.Options, forecast.BatchConfig{
			Runs:        cfg.Simulation.Runs,
			Seed:        seed,
			Concurrency: cfg.Simulation.Concurrency,
			Policy:      forecast.PolicyFromConfig(cfg.Simulation.Decisions),
		})
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if !mathutil.IsFinite(batch.NetWorth.P10) || !mathutil.IsFinite(batch.NetWorth.P90) {
			h.respondError(w, http.StatusUnprocessableEntity, nonFiniteMessage(warnings), op)
			return
		}
		summary := report.GenerateBatch(batch, opts.IncludeRuns)
		response.Batch = &summary
		err = output.BatchCsvFormat(&csvBuf, summary)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
			return
		}
	} else {
		engine := forecast.NewEngine(h.logger, events.NewSeededSource(seed),
			forecast.PolicyFromConfig(cfg.Simulation.Decisions), cfg.Simulation.Options)
		result := engine.Run(cfg.Parameters)
		if !mathutil.IsFinite(result.Person.NetWorth()) {
			h.respondError(w, http.StatusUnprocessableEntity, nonFiniteMessage(warnings), op)
			return
		}
		rep := report.Generate(result)
		if !opts.Monthly {
			rep.Months = nil
		}
		response.Report = &rep
		if opts.Monthly {
			err = output.MonthlyCsvFormat(&csvBuf, result.Months)
		} else {
			err = output.CsvFormat(&csvBuf, rep)
		}
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
			return
		}
	}

	elapsed := time.Since(start)
	response.CSV = csvBuf.String()
	response.Duration = elapsed.String()

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Bool("batch", opts.Batch),
		zap.Int64("seed", seed),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func nonFiniteMessage(warnings []string) string {
	msg := "simulation produced non-finite values"
	if len(warnings) > 0 {
		msg += ": " + strings.Join(warnings, "; ")
	}
	return msg
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
