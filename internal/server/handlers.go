package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
	"github.com/ironsheep/region-features-mcp/internal/palette"
	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/regfeat/morpho2d"
	"github.com/ironsheep/region-features-mcp/internal/table"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "region_features").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000,
// or -32602 when the arguments name unknown features, labels or policies.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		if isInputError(err) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	case "region_features":
		return s.handleRegionFeatures(args)
	case "region_labels":
		return s.handleRegionLabels(args)
	case "region_feature_list":
		return s.handleRegionFeatureList(args)
	case "region_label_overlay":
		return s.handleRegionLabelOverlay(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Label source ===

type labelSourceArgs struct {
	Path      string `json:"path"`
	Binary    bool   `json:"binary"`
	Threshold *int   `json:"threshold"`
	Labels    []int  `json:"labels"`
}

// loadLabelMap decodes the label map described by a, through the cache.
func (s *Server) loadLabelMap(a labelSourceArgs) (*labelmap.LabelMap, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if !a.Binary {
		return s.cache.LabelMap(a.Path)
	}
	level := s.cfg.Analysis.MaskThreshold
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return nil, fmt.Errorf("threshold must be within 0-255, got %d", *a.Threshold)
		}
		level = uint8(*a.Threshold)
	}
	return s.cache.Mask(a.Path, level)
}

// === region_features ===

type regionFeaturesArgs struct {
	labelSourceArgs
	Features    []string `json:"features"`
	UnitDisplay string   `json:"unit_display"`
	SpacingX    *float64 `json:"spacing_x"`
	SpacingY    *float64 `json:"spacing_y"`
	Unit        *string  `json:"unit"`
	Format      string   `json:"format"`
}

// RegionFeaturesResult is the result of the region_features tool.
type RegionFeaturesResult struct {
	Path        string       `json:"path"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	RegionCount int          `json:"region_count"`
	UnitDisplay string       `json:"unit_display"`
	Features    *table.Table `json:"features,omitempty"`
	Units       *table.Table `json:"units,omitempty"`
	CSV         string       `json:"csv,omitempty"`
	UnitsCSV    string       `json:"units_csv,omitempty"`
}

func (s *Server) handleRegionFeatures(args json.RawMessage) (interface{}, error) {
	var a regionFeaturesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = "json"
	}
	if a.Format != "json" && a.Format != "csv" {
		return nil, fmt.Errorf("unknown format %q (want json or csv)", a.Format)
	}

	policyName := a.UnitDisplay
	if policyName == "" {
		policyName = s.cfg.Analysis.UnitDisplay
	}
	policy, err := regfeat.ParseUnitDisplay(policyName)
	if err != nil {
		return nil, err
	}

	m, err := s.loadLabelMap(a.labelSourceArgs)
	if err != nil {
		return nil, err
	}
	m, err = m.WithCalibration(s.calibration(a))
	if err != nil {
		return nil, err
	}

	ids := make([]regfeat.ID, len(a.Features))
	for i, f := range a.Features {
		ids[i] = regfeat.ID(f)
	}
	if len(ids) == 0 {
		ids = s.cfg.FeatureIDs()
	}

	features, units, err := morpho2d.Measure(s.registry, m, a.Labels, ids,
		regfeat.WithUnitDisplay(policy),
		regfeat.WithWorkers(s.cfg.Analysis.Workers),
		regfeat.WithListener(regfeat.NewLogListener(s.log)),
	)
	if err != nil {
		return nil, err
	}

	res := &RegionFeaturesResult{
		Path:        a.Path,
		Width:       m.Width(),
		Height:      m.Height(),
		RegionCount: features.RowCount(),
		UnitDisplay: policy.String(),
	}
	if a.Format == "csv" {
		res.CSV, err = tableCSV(features)
		if err != nil {
			return nil, err
		}
		if policy == regfeat.UnitsNewTable {
			if res.UnitsCSV, err = tableCSV(units); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	res.Features = features
	if policy == regfeat.UnitsNewTable {
		res.Units = units
	}
	return res, nil
}

// calibration returns the configured calibration overridden by the request.
func (s *Server) calibration(a regionFeaturesArgs) labelmap.Calibration {
	cal := s.cfg.Calibration
	if a.SpacingX != nil {
		cal.X.Spacing = *a.SpacingX
		cal.Y.Spacing = *a.SpacingX
	}
	if a.SpacingY != nil {
		cal.Y.Spacing = *a.SpacingY
	}
	if a.Unit != nil {
		cal.X.Unit = *a.Unit
		cal.Y.Unit = *a.Unit
	}
	return cal
}

func tableCSV(t *table.Table) (string, error) {
	var sb strings.Builder
	if err := t.WriteCSV(&sb); err != nil {
		return "", fmt.Errorf("failed to write table %q: %w", t.Name(), err)
	}
	return sb.String(), nil
}

// === region_labels ===

// RegionLabelsResult is the result of the region_labels tool.
type RegionLabelsResult struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	LabelCount int    `json:"label_count"`
	Labels     []int  `json:"labels"`
}

func (s *Server) handleRegionLabels(args json.RawMessage) (interface{}, error) {
	var a labelSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := s.loadLabelMap(a)
	if err != nil {
		return nil, err
	}
	labels := labelmap.FindAllLabels(m)
	return &RegionLabelsResult{
		Path:       a.Path,
		Width:      m.Width(),
		Height:     m.Height(),
		LabelCount: len(labels),
		Labels:     labels,
	}, nil
}

// === region_feature_list ===

// FeatureInfo describes one computable feature.
type FeatureInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// FeatureListResult is the result of the region_feature_list tool.
type FeatureListResult struct {
	Features        []FeatureInfo `json:"features"`
	DefaultFeatures []string      `json:"default_features"`
	UnitDisplay     []string      `json:"unit_display"`
}

func (s *Server) handleRegionFeatureList(args json.RawMessage) (interface{}, error) {
	entries := s.registry.Entries()
	res := &FeatureListResult{
		Features:        make([]FeatureInfo, 0, len(entries)),
		DefaultFeatures: s.cfg.Analysis.Features,
	}
	for _, e := range entries {
		res.Features = append(res.Features, FeatureInfo{ID: string(e.ID), Description: e.Description})
	}
	for _, u := range []regfeat.UnitDisplay{regfeat.UnitsNone, regfeat.UnitsColumnNames, regfeat.UnitsNewColumns, regfeat.UnitsNewTable} {
		res.UnitDisplay = append(res.UnitDisplay, u.String())
	}
	return res, nil
}

// === region_label_overlay ===

type regionOverlayArgs struct {
	labelSourceArgs
	Scale      int    `json:"scale"`
	Background string `json:"background"`
	ShowLabels bool   `json:"show_labels"`
}

func (s *Server) handleRegionLabelOverlay(args json.RawMessage) (interface{}, error) {
	var a regionOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", a.Scale)
	}
	m, err := s.loadLabelMap(a.labelSourceArgs)
	if err != nil {
		return nil, err
	}

	labels := a.Labels
	if labels == nil {
		labels = labelmap.FindAllLabels(m)
	} else if _, err := labelmap.NewIndex(labels); err != nil {
		return nil, err
	}
	return palette.Render(m, labels, palette.OverlayOptions{
		Scale:      a.Scale,
		Background: a.Background,
		ShowLabels: a.ShowLabels,
	})
}

// isInputError reports whether err stems from unusable request data rather
// than from a failure of the engine.
func isInputError(err error) bool {
	var inputErr *labelmap.InvalidInputError
	var unknown *regfeat.UnknownFeatureError
	var policy *regfeat.UnknownUnitPolicyError
	return errors.As(err, &inputErr) || errors.As(err, &unknown) || errors.As(err, &policy)
}
