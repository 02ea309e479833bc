package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// detectionProperties returns the tuning parameters shared by every
// detection-backed tool.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before gradient computation. Default 2.0",
			"default":     2.0,
		},
		"edge_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Minimum gradient intensity (|dx|+|dy|) for a pixel to vote. Default 30",
			"default":     30,
		},
		"local_max_radius": map[string]interface{}{
			"type":        "integer",
			"description": "Non-maximum suppression radius in accumulator cells. Default 5",
			"default":     5,
		},
		"min_counts": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum votes for an accumulator peak to become a line. Default 5",
			"default":     5,
		},
		"min_distance_from_origin": map[string]interface{}{
			"type":        "integer",
			"description": "Accumulator cells closer than this to the image center are ignored. Default 5",
			"default":     5,
		},
		"max_lines": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of lines to return, strongest first. Default 10",
			"default":     10,
		},
		"merge_angle_degrees": map[string]interface{}{
			"type":        "number",
			"description": "Angular tolerance for merging near-duplicate lines. Default 9",
			"default":     9.0,
		},
		"merge_distance": map[string]interface{}{
			"type":        "number",
			"description": "Positional tolerance in pixels for merging near-duplicate lines. Default 10",
			"default":     10.0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	detectLinesProps := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"region": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"description": "Optional region to analyze. If omitted, analyzes entire image. Reported coordinates are relative to the region.",
		},
	}
	for name, prop := range detectionProperties() {
		detectLinesProps[name] = prop
	}

	overlayProps := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"stroke_width": map[string]interface{}{
			"type":        "number",
			"description": "Stroke width in pixels for drawn lines. Default 2",
			"default":     2.0,
		},
	}
	for name, prop := range detectionProperties() {
		overlayProps[name] = prop
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Caches the image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Line Detection
		{
			Name:        "image_detect_lines",
			Description: "Detect straight lines in the image using a foot-of-normal Hough transform. Returns each line's endpoints clipped to the image, its angle, vote strength, and the color sampled at its midpoint. Useful for finding rules, table borders, and connections in diagrams.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectLinesProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_edge_map",
			Description: "Return the binary edge mask used for line detection as a base64-encoded PNG (edges white on black). Useful for tuning edge_threshold before detecting lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before gradient computation. Default 2.0",
						"default":     2.0,
					},
					"edge_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum gradient intensity (|dx|+|dy|) for a pixel to count as an edge. Default 30",
						"default":     30,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_line_overlay",
			Description: "Detect straight lines and return the source image with each detected line stroked in a distinct color, strongest line first. Useful for visually verifying detection parameters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
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
