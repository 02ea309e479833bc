// Package server implements the MCP (Model Context Protocol) server for line detection tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the Hough
// line-detection pipeline through the MCP protocol. It's designed to work
// with Claude and other MCP-compatible clients, enabling AI systems to
// analyze structured images (diagrams, scans, schematics) with precision.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract rectangular region as base64 PNG
//
// Line Detection:
//   - image_detect_lines: Detect straight lines via the foot-of-normal
//     Hough transform, returning clipped endpoints, angles, and vote counts
//   - image_edge_map: Render the thresholded edge mask the detector votes from
//   - image_line_overlay: Render detected lines stroked over the source image
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Detection Parameters
//
// Each detection call builds a fresh detector from its arguments, so
// concurrent or repeated calls never share tuning state. All parameters
// have working defaults chosen for clean diagram-style images; noisy
// inputs usually want a larger blur_radius and edge_threshold.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
