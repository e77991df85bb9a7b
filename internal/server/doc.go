// Package server implements the MCP (Model Context Protocol) server for region
// feature analysis.
//
// This package provides a JSON-RPC 2.0 server that measures the regions of
// label images: pixel counts, areas, perimeters, Euler numbers and derived
// shape factors, reported as tables with physical units.
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
//   - region_features: Compute a feature table, one row per region
//   - region_labels: List the labels present in an image
//   - region_feature_list: List feature IDs and unit display policies
//   - region_label_overlay: Render regions in distinct colours as PNG
//
// A label image is an integer-valued image (8/16-bit grayscale or paletted)
// where each pixel value names a region and 0 is background. Other images
// can be analyzed as a single region with "binary": true.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server process,
// so repeated calls on the same file skip the decoder.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for unusable arguments, -32000 for other failures
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := config.LoadConfig(path)
//	if err != nil {
//	    return err
//	}
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(log))
//	if err := srv.Run(); err != nil {
//	    return err
//	}
package server
