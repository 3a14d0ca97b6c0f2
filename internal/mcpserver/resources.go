package mcpserver

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reign/calleditor/internal/service"
)

func registerResources(srv *server.MCPServer, svc *service.Service) {
	registerCallsResource(srv, svc)
	registerCallTemplate(srv, svc)
}

func registerCallsResource(srv *server.MCPServer, svc *service.Service) {
	resource := mcp.NewResource(
		"calleditor://calls",
		"Recent Calls",
		mcp.WithResourceDescription("The most recent call-log entries, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		calls, err := svc.ListCalls(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"count": len(calls),
			"calls": calls,
		})
	})
}

func registerCallTemplate(srv *server.MCPServer, svc *service.Service) {
	template := mcp.NewResourceTemplate(
		"calleditor://calls/{id}",
		"Call Details",
		mcp.WithTemplateDescription("A single recent call-log entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("call id is required")
		}
		call, err := svc.GetCall(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, call)
	})
}

// templateArg reads a URI template variable, which arrives as a string or
// a single-element list depending on the matcher.
func templateArg(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []string:
		if len(s) > 0 {
			return s[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
