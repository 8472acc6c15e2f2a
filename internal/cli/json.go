package cli

import (
	"encoding/json"
	"fmt"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool       `json:"ok"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count,omitempty"`
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data any, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Meta: meta})
}

// outputSuccessWithWarnings outputs a successful JSON response with warnings.
func outputSuccessWithWarnings(data any, warnings []Warning, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// outputError outputs an error JSON response.
func outputError(code, message string, details any, suggestion string) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    message,
			Details:    details,
			Suggestion: suggestion,
		},
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError reports err according to the output mode. In JSON mode the
// envelope is printed and a silent failure is returned so the exit status is
// still non-zero.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), nil, suggestion)
		return errSilentFailure
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}

// handleErrorMsg is handleError for a plain message.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, fmt.Errorf("%s", message), suggestion)
}
