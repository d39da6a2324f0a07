// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support.
//
// With --json every command writes exactly one JSONResponse to stdout so
// scripts can drive the engine without parsing human output.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONResponse is the envelope written by every command in JSON mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC 3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed response. data may be nil; check
// uses it to report the verdict of a rejected edit.
func NewJSONErrorResponse(command string, data any, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      data,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(r)
}

// String returns the response as indented JSON.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// CheckData is the result of "check".
type CheckData struct {
	Policy   string `json:"policy"`
	Accepted bool   `json:"accepted"`
	Text     string `json:"text"`
	Caret    int    `json:"caret"`
}

// CorrectData is the result of "correct".
type CorrectData struct {
	Policy  string `json:"policy"`
	Input   string `json:"input"`
	Text    string `json:"text"`
	Caret   int    `json:"caret"`
	Changed bool   `json:"changed"`
}

// RealData is the result of "real". The values are null when the text has
// no displayable value.
type RealData struct {
	Policy      string  `json:"policy"`
	Text        string  `json:"text"`
	Real        *string `json:"real"`
	RealDecimal *string `json:"real_decimal"`
}

// ExplainData is the result of "explain".
type ExplainData struct {
	Policy   string `json:"policy"`
	Markdown string `json:"markdown"`
}

// ConfigValidateData is the result of "config validate".
type ConfigValidateData struct {
	Path   string   `json:"path"`
	Fields []string `json:"fields"`
}

// ConfigInitData is the result of "config init".
type ConfigInitData struct {
	Path string `json:"path"`
}

// VersionData is the result of "version".
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
