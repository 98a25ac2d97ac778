// Package swaggerkit serves the OpenAPI document and Swagger UI for the API
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"truthlens/internal/core/version"
	"truthlens/internal/platform/config"
)

// operation is one documented route
type operation struct {
	method, path, tag, summary string
	body                       string // schema name of the request body, empty for none
	extra                      map[string]string
}

// operations mirrors the routes the api package mounts
var operations = []operation{
	{method: "post", path: "/analyze", tag: "Analysis", summary: "Score an article, answering from the cache when possible", body: "Document"},
	{method: "get", path: "/analyze/{url}", tag: "Analysis", summary: "Cached analysis for a url", extra: map[string]string{"404": "Analysis not found for this URL", "501": "Caching not available"}},
	{method: "post", path: "/save_verification", tag: "Analysis", summary: "Record that a user checked an article", body: "VerificationInput"},
	{method: "post", path: "/report", tag: "Reports", summary: "Flag an article", body: "ReportInput"},
	{method: "get", path: "/reports/{url}", tag: "Reports", summary: "Reports filed against an article"},
	{method: "get", path: "/reports/stats", tag: "Reports", summary: "Report totals by reason"},
	{method: "get", path: "/meta/health", tag: "Meta", summary: "Health check"},
	{method: "get", path: "/meta/ready", tag: "Meta", summary: "Readiness probe with dependency checks"},
	{method: "get", path: "/meta/version", tag: "Meta", summary: "Build and version info"},
}

// bodySchemas are the request models; kept to the required fields
var bodySchemas = map[string]map[string]any{
	"Document":          object([]string{"url"}, "title", "content", "url"),
	"VerificationInput": object([]string{"url"}, "url", "title", "credibilityScore", "trustLevel", "timestamp"),
	"ReportInput":       object([]string{"articleUrl", "reason"}, "articleUrl", "reason", "comment", "userReference", "timestamp"),
}

func object(required []string, fields ...string) map[string]any {
	props := map[string]any{}
	for _, f := range fields {
		props[f] = map[string]any{}
	}
	req := make([]any, 0, len(required))
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]any{"type": "object", "properties": props, "required": req}
}

// buildSpec assembles the OAS3 document from operations
func buildSpec() map[string]any {
	info := version.Info()
	paths := map[string]any{}
	for _, op := range operations {
		node, _ := paths[op.path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[op.path] = node
		}
		responses := map[string]any{"200": map[string]any{"description": "ok"}}
		for code, desc := range op.extra {
			responses[code] = map[string]any{"description": desc}
		}
		o := map[string]any{"tags": []any{op.tag}, "summary": op.summary, "responses": responses}
		if op.body != "" {
			o["requestBody"] = map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{"schema": map[string]any{"$ref": "#/components/schemas/" + op.body}},
				},
			}
		}
		node[op.method] = o
	}

	schemas := map[string]any{}
	for name, s := range bodySchemas {
		schemas[name] = s
	}
	return map[string]any{
		"openapi":    "3.0.3",
		"info":       map[string]any{"title": info.Service, "version": info.Version},
		"servers":    []any{map[string]any{"url": "/api"}},
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}
}

// serveDocJSON builds the document per request so CORE_API_DOCS_TITLE_SUFFIX is live
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := buildSpec()

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorResponseDefinition(spec)
		addDefaultError(spec)
		addDefaultBadRequest(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureErrorResponseDefinition creates a simple error envelope model if missing
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultError walks every operation and injects a 500 response if absent
// OAS3 version using content.application/json.schema
func addDefaultError(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	errResp := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": 500,
					"status":      "Internal Server Error",
					"code":        1,
					"error":       "panic recovered",
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses["500"]; !exists {
				responses["500"] = errResp
			}
		}
	}
}

// addDefaultBadRequest injects the binder's 400 on every operation
func addDefaultBadRequest(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	br := map[string]any{
		"description": "Bad Request",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": 400,
					"status":      "Bad Request",
					"code":        8,
					"error":       "url is a required field",
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, exists := resps["400"]; !exists {
				resps["400"] = br
			}
		}
	}
}
