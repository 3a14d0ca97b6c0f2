package mcpserver

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reign/calleditor/internal/service"
)

func registerTools(srv *server.MCPServer, svc *service.Service) {
	srv.AddTool(listCallsTool(), listCallsHandler(svc))
	srv.AddTool(getCallTool(), getCallHandler(svc))
	srv.AddTool(addCallTool(), addCallHandler(svc))
}

func listCallsTool() mcp.Tool {
	return mcp.NewTool(
		"list_call_logs",
		mcp.WithDescription("List the most recent call-log entries, newest first."),
	)
}

func listCallsHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calls, err := svc.ListCalls(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count": len(calls),
			"calls": calls,
		})
	}
}

func getCallTool() mcp.Tool {
	return mcp.NewTool(
		"get_call_log",
		mcp.WithDescription("Fetch one of the recent call-log entries by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Call-log entry identifier."),
		),
	)
}

func getCallHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		call, err := svc.GetCall(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(call)
	}
}

func addCallTool() mcp.Tool {
	return mcp.NewTool(
		"add_call_log",
		mcp.WithDescription("Record a call. With base_id the entry is edited: its values are copied, overridden by the given fields, and written as a new record."),
		mcp.WithString("base_id",
			mcp.Description("Optional entry to copy values from."),
		),
		mcp.WithString("number",
			mcp.Description("Phone number."),
		),
		mcp.WithString("name",
			mcp.Description("Cached contact name."),
		),
		mcp.WithString("date",
			mcp.Description("Date as dd/MM/yyyy. Defaults to today."),
		),
		mcp.WithString("time",
			mcp.Description("Time as hh:mm AM/PM. Defaults to now."),
		),
		mcp.WithString("duration",
			mcp.Description("Duration as HH:mm:ss. Ignored for missed calls."),
		),
		mcp.WithString("type",
			mcp.Description("Call type."),
			mcp.Enum("incoming", "outgoing", "missed"),
		),
	)
}

func addCallHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			BaseID   string `json:"base_id"`
			Number   string `json:"number"`
			Name     string `json:"name"`
			Date     string `json:"date"`
			Time     string `json:"time"`
			Duration string `json:"duration"`
			Type     string `json:"type"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		calls, err := svc.AddCall(ctx, service.AddCallOptions{
			BaseID:   args.BaseID,
			Name:     args.Name,
			Number:   args.Number,
			Date:     args.Date,
			Time:     args.Time,
			Duration: args.Duration,
			Type:     args.Type,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count": len(calls),
			"calls": calls,
		})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
