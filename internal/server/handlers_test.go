package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// createTestImageFile creates a solid-color test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTempPNG(t, img)
}

// createRuledImageFile creates a white test image with a black horizontal
// stroke, so the detection tools have something to find.
func createRuledImageFile(t *testing.T, width, height, row int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 5; x < width-5; x++ {
		img.Set(x, row, color.Black)
	}
	return writeTempPNG(t, img)
}

func writeTempPNG(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}
	return tmpFile.Name()
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	return s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath})

	if resp == nil {
		t.Fatal("handleToolsCall returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/image.png"})

	if resp.Error == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_Crop(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_crop", map[string]interface{}{
		"path": imgPath,
		"x1":   10,
		"y1":   10,
		"x2":   50,
		"y2":   50,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_Crop_WithScale(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_crop", map[string]interface{}{
		"path":  imgPath,
		"x1":    10,
		"y1":    10,
		"x2":    50,
		"y2":    50,
		"scale": 2.0,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_DetectLines(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 70)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_detect_lines", map[string]interface{}{"path": imgPath})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	// The result wraps the JSON payload in MCP content format
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatal("Result should contain content")
	}
	text, ok := content[0]["text"].(string)
	if !ok || text == "" {
		t.Fatal("Content should carry a JSON text payload")
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("Payload should be valid JSON: %v", err)
	}
	if payload.Count < 1 {
		t.Errorf("Expected at least one detected line, got %d", payload.Count)
	}
}

func TestHandleToolsCall_DetectLines_Blank(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{255, 255, 255, 255})
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_detect_lines", map[string]interface{}{"path": imgPath})

	// Zero lines is a valid result, not an error
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_DetectLines_WithRegion(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 200, 200, 60)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_detect_lines", map[string]interface{}{
		"path": imgPath,
		"region": map[string]interface{}{
			"x1": 0, "y1": 0, "x2": 200, "y2": 120,
		},
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_DetectLines_InvalidRegion(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 50)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_detect_lines", map[string]interface{}{
		"path": imgPath,
		"region": map[string]interface{}{
			"x1": 0, "y1": 0, "x2": 500, "y2": 500,
		},
	})

	if resp.Error == nil {
		t.Fatal("Expected error for out-of-bounds region")
	}
}

func TestHandleToolsCall_DetectLines_WithTuning(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 70)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_detect_lines", map[string]interface{}{
		"path":                     imgPath,
		"blur_radius":              1.0,
		"edge_threshold":           50,
		"local_max_radius":         3,
		"min_counts":               10,
		"min_distance_from_origin": 3,
		"max_lines":                3,
		"merge_angle_degrees":      5,
		"merge_distance":           15,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_EdgeMap(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 50)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_edge_map", map[string]interface{}{"path": imgPath})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_EdgeMap_WithThreshold(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 50)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_edge_map", map[string]interface{}{
		"path":           imgPath,
		"blur_radius":    1.0,
		"edge_threshold": 80,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_LineOverlay(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 70)
	defer os.Remove(imgPath)

	resp := callTool(t, s, "image_line_overlay", map[string]interface{}{
		"path":         imgPath,
		"stroke_width": 3.0,
	})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`invalid json`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil {
		t.Fatal("Expected error for invalid JSON params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New()
	imgPath := createRuledImageFile(t, 100, 100, 70)
	defer os.Remove(imgPath)

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"image_dimensions", map[string]interface{}{"path": imgPath}},
		{"image_crop", map[string]interface{}{"path": imgPath, "x1": 0, "y1": 0, "x2": 50, "y2": 50}},
		{"image_detect_lines", map[string]interface{}{"path": imgPath}},
		{"image_edge_map", map[string]interface{}{"path": imgPath}},
		{"image_line_overlay", map[string]interface{}{"path": imgPath}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	_, err := s.executeTool("image_load", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}

func TestDetectionArgs_Defaults(t *testing.T) {
	var a detectionArgs
	a.applyDefaults()

	if a.BlurRadius != 2.0 {
		t.Errorf("BlurRadius default: got %v, want 2.0", a.BlurRadius)
	}
	if a.EdgeThreshold != 30 {
		t.Errorf("EdgeThreshold default: got %v, want 30", a.EdgeThreshold)
	}
	if a.LocalMaxRadius != 5 {
		t.Errorf("LocalMaxRadius default: got %v, want 5", a.LocalMaxRadius)
	}
	if a.MinCounts != 5 {
		t.Errorf("MinCounts default: got %v, want 5", a.MinCounts)
	}
	if a.MaxLines != 10 {
		t.Errorf("MaxLines default: got %v, want 10", a.MaxLines)
	}

	// Explicit values survive
	b := detectionArgs{MinCounts: 20, MaxLines: 3}
	b.applyDefaults()
	if b.MinCounts != 20 || b.MaxLines != 3 {
		t.Errorf("Explicit values overwritten: %+v", b)
	}
}
