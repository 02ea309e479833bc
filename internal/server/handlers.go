package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ironsheep/line-tools-mcp/internal/detection"
	"github.com/ironsheep/line-tools-mcp/internal/imaging"
	"github.com/ironsheep/line-tools-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_lines").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)

	// Line Detection
	case "image_detect_lines":
		return s.handleImageDetectLines(args)
	case "image_edge_map":
		return s.handleImageEdgeMap(args)
	case "image_line_overlay":
		return s.handleImageLineOverlay(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Line Detection Handlers ===

// detectionArgs holds the tuning parameters shared by the
// detection-backed tools. Zero values mean "use the default".
type detectionArgs struct {
	BlurRadius            float64 `json:"blur_radius"`
	EdgeThreshold         float64 `json:"edge_threshold"`
	LocalMaxRadius        int     `json:"local_max_radius"`
	MinCounts             int     `json:"min_counts"`
	MinDistanceFromOrigin int     `json:"min_distance_from_origin"`
	MaxLines              int     `json:"max_lines"`
	MergeAngleDegrees     float64 `json:"merge_angle_degrees"`
	MergeDistance         float64 `json:"merge_distance"`
}

func (a *detectionArgs) applyDefaults() {
	if a.BlurRadius == 0 {
		a.BlurRadius = 2.0
	}
	if a.EdgeThreshold == 0 {
		a.EdgeThreshold = 30
	}
	if a.LocalMaxRadius == 0 {
		a.LocalMaxRadius = 5
	}
	if a.MinCounts == 0 {
		a.MinCounts = 5
	}
	if a.MinDistanceFromOrigin == 0 {
		a.MinDistanceFromOrigin = 5
	}
	if a.MaxLines == 0 {
		a.MaxLines = 10
	}
	if a.MergeAngleDegrees == 0 {
		a.MergeAngleDegrees = 9
	}
	if a.MergeDistance == 0 {
		a.MergeDistance = 10
	}
}

// newDetector builds a detector from the (defaulted) arguments.
func (a detectionArgs) newDetector() (*detection.Detector, error) {
	d, err := detection.New(detection.Config{
		LocalMaxRadius:        a.LocalMaxRadius,
		MinCounts:             a.MinCounts,
		MinDistanceFromOrigin: a.MinDistanceFromOrigin,
		EdgeThreshold:         float32(a.EdgeThreshold),
		MaxLines:              a.MaxLines,
		Concurrent:            true,
	})
	if err != nil {
		return nil, err
	}
	d.MergeAngle = a.MergeAngleDegrees * math.Pi / 180
	d.MergeDistance = a.MergeDistance
	return d, nil
}

type imageDetectLinesArgs struct {
	Path   string `json:"path"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
	detectionArgs
}

func (s *Server) handleImageDetectLines(args json.RawMessage) (interface{}, error) {
	var a imageDetectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != nil {
		img, err = imaging.CropRegion(img, a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
		if err != nil {
			return nil, err
		}
	}

	d, err := a.newDetector()
	if err != nil {
		return nil, err
	}
	return detection.DetectImage(d, img, a.BlurRadius)
}

type imageEdgeMapArgs struct {
	Path          string  `json:"path"`
	BlurRadius    float64 `json:"blur_radius"`
	EdgeThreshold float64 `json:"edge_threshold"`
}

func (s *Server) handleImageEdgeMap(args json.RawMessage) (interface{}, error) {
	var a imageEdgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BlurRadius == 0 {
		a.BlurRadius = 2.0
	}
	if a.EdgeThreshold == 0 {
		a.EdgeThreshold = 30
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	gray := imaging.GrayField(imaging.Smooth(img, a.BlurRadius))
	derivX, derivY := imaging.SobelGradients(gray)

	intensity := raster.NewFieldF32(gray.Width, gray.Height)
	if err := imaging.EdgeIntensityAbs(derivX, derivY, intensity); err != nil {
		return nil, err
	}
	mask := raster.NewMask(gray.Width, gray.Height)
	imaging.Threshold(intensity, mask, float32(a.EdgeThreshold))

	return imaging.RenderEdgeMap(mask)
}

type imageLineOverlayArgs struct {
	Path        string  `json:"path"`
	StrokeWidth float64 `json:"stroke_width"`
	detectionArgs
}

func (s *Server) handleImageLineOverlay(args json.RawMessage) (interface{}, error) {
	var a imageLineOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()
	if a.StrokeWidth == 0 {
		a.StrokeWidth = 2
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	d, err := a.newDetector()
	if err != nil {
		return nil, err
	}
	if _, err := detection.DetectImage(d, img, a.BlurRadius); err != nil {
		return nil, err
	}
	return imaging.RenderLineOverlay(img, d.Lines(), a.StrokeWidth)
}
