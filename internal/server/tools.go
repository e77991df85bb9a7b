package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Schema properties shared by the tools reading a label image.
func labelSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the label image (8/16-bit grayscale or paletted PNG; pixel value = region label, 0 = background)",
		},
		"binary": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat the image as a mask: pixels at or above 'threshold' form region 1. Use this for photographs and colour images. Default false",
			"default":     false,
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Grey level used when 'binary' is true (0-255). Default from configuration (128)",
		},
		"labels": map[string]interface{}{
			"type":        "array",
			"description": "Region labels to analyze, in output order. Default: every non-zero label in the image",
			"items": map[string]interface{}{
				"type": "integer",
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	features := labelSourceProperties()
	features["features"] = map[string]interface{}{
		"type":        "array",
		"description": "Feature IDs to compute (see region_feature_list). Default: Area, Perimeter, Circularity, EulerNumber",
		"items": map[string]interface{}{
			"type": "string",
		},
	}
	features["unit_display"] = map[string]interface{}{
		"type":        "string",
		"description": "How physical units are shown: none, column_names, new_columns or new_table",
		"enum":        []string{"none", "column_names", "new_columns", "new_table"},
	}
	features["spacing_x"] = map[string]interface{}{
		"type":        "number",
		"description": "Physical width of one pixel. Default from configuration (1)",
	}
	features["spacing_y"] = map[string]interface{}{
		"type":        "number",
		"description": "Physical height of one pixel. Default: spacing_x if given, else configuration",
	}
	features["unit"] = map[string]interface{}{
		"type":        "string",
		"description": "Length unit name, e.g. 'mm' or 'um'",
	}
	features["format"] = map[string]interface{}{
		"type":        "string",
		"description": "Table encoding: json (columns with values) or csv. Default json",
		"enum":        []string{"json", "csv"},
		"default":     "json",
	}

	overlay := labelSourceProperties()
	overlay["scale"] = map[string]interface{}{
		"type":        "integer",
		"description": "Integer magnification of each pixel. Default 1",
		"default":     1,
	}
	overlay["background"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex colour of background pixels. Default #000000",
		"default":     "#000000",
	}
	overlay["show_labels"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Draw each label value at its region centroid. Default false",
		"default":     false,
	}

	return []Tool{
		{
			Name:        "region_features",
			Description: "Measure the regions of a label image: pixel count, area, Crofton perimeter, Euler number, circularity and bounding box, with physical units. Returns one row per region.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": features,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "region_labels",
			Description: "List the region labels present in a label image, with the image size.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": labelSourceProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "region_feature_list",
			Description: "List the feature IDs accepted by region_features and the unit display policies.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "region_label_overlay",
			Description: "Render a label image with one distinct colour per region and return it as base64-encoded PNG, with the colour legend.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlay,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
