package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/client"
	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/crewbase/crewbase-mcp/internal/domain/suggest"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, caller identity.Caller, req project.CreateRequest) (*project.Aggregate, error)
	Get(ctx context.Context, caller identity.Caller, projectID string) (*project.Aggregate, error)
	Delete(ctx context.Context, caller identity.Caller, projectID string) error
	UpdateTaskStatus(ctx context.Context, caller identity.Caller, taskID string, status project.TaskStatus) (*project.Task, error)
	AddComment(ctx context.Context, caller identity.Caller, projectID, content string) (*project.Comment, error)
	StatsByPeriod(ctx context.Context, caller identity.Caller, start, end time.Time) ([]project.PeriodStat, error)
}

// AnalyticsService defines dashboard operations needed by MCP.
type AnalyticsService interface {
	DashboardOverview(ctx context.Context, caller identity.Caller) (*analytics.DashboardOverview, error)
}

// FinanceService defines invoice operations needed by MCP.
type FinanceService interface {
	InvoiceDetail(ctx context.Context, caller identity.Caller, invoiceID string) (*finance.InvoiceDetail, error)
}

// ClientService defines client-book operations needed by MCP.
type ClientService interface {
	ListForCaller(ctx context.Context, caller identity.Caller) ([]client.Client, error)
	ListRecent(ctx context.Context, caller identity.Caller, limit int) ([]client.Client, error)
	History(ctx context.Context, caller identity.Caller, clientID string) ([]client.ProjectHistory, error)
}

// SuggestService defines task-suggestion operations needed by MCP.
type SuggestService interface {
	Suggest(ctx context.Context, caller identity.Caller, req suggest.Request) ([]suggest.ModulePlan, error)
}

// Services groups the domain services the tools dispatch into.
type Services struct {
	Projects  ProjectService
	Analytics AnalyticsService
	Finance   FinanceService
	Clients   ClientService
	Suggest   SuggestService
}

// Config carries everything NewServer needs to assemble the server.
type Config struct {
	Services      Services
	TransportMode string // "stdio" or "http"
	DefaultCaller identity.Caller
	Logger        *slog.Logger
}

// NewServer builds the MCP server: middleware first, then doc resources and tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "crewbase",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode has no per-request headers; the caller identity is fixed
	// by configuration. HTTP mode requires identity headers on every call.
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(defaultIdentityMiddleware(cfg.DefaultCaller))
	} else {
		server.AddReceivingMiddleware(identityMiddleware())
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
