package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/client"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/crewbase/crewbase-mcp/internal/domain/report"
	"github.com/crewbase/crewbase-mcp/internal/domain/suggest"
)

const dateLayout = "2006-01-02"

// registerTools registers all tools on the server.
func registerTools(server *sdkmcp.Server, svcs Services) {
	engine := analytics.NewEngine()

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_summary",
		Description: "Get a concise human-readable summary of a project: progress, modules, finances, and delivery status",
	}, projectSummaryHandler(svcs.Projects, engine))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_risk",
		Description: "Assess a project's delay probability, budget health, and recommended actions",
	}, projectRiskHandler(svcs.Projects, engine))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard_overview",
		Description: "Get an aggregate overview of all projects you own: counts, task progress, and financial totals",
	}, dashboardOverviewHandler(svcs.Analytics))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_stats_by_period",
		Description: "List projects you own that were created inside a date range (dates as YYYY-MM-DD)",
	}, statsByPeriodHandler(svcs.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "suggest_tasks",
		Description: "Generate suggested modules and tasks for a new project from its description",
	}, suggestTasksHandler(svcs.Suggest))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_email_draft",
		Description: "Generate a draft email for a client or team member about a project",
	}, emailDraftHandler(svcs.Projects, engine))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "explain_invoice",
		Description: "Explain an invoice in plain language with its project's financial context",
	}, explainInvoiceHandler(svcs.Finance))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_user_clients",
		Description: "List all clients attached to projects you own",
	}, userClientsHandler(svcs.Clients))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_clients",
		Description: "List your most recently engaged clients",
	}, recentClientsHandler(svcs.Clients))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_client_history",
		Description: "List your project history with one client",
	}, clientHistoryHandler(svcs.Clients))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project owned by you (dates as YYYY-MM-DD)",
	}, createProjectHandler(svcs.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Permanently delete a project you own, including its tasks, invoices, and comments",
	}, deleteProjectHandler(svcs.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task_status",
		Description: "Move a task to TODO, INPROGRESS, or COMPLETED",
	}, updateTaskStatusHandler(svcs.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_comment",
		Description: "Add a comment to a project's discussion",
	}, addCommentHandler(svcs.Projects))
}

// ProjectIDInput identifies a project.
type ProjectIDInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

func projectSummaryHandler(projects ProjectService, engine *analytics.Engine) sdkmcp.ToolHandlerFor[ProjectIDInput, report.Summary] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectIDInput) (*sdkmcp.CallToolResult, report.Summary, error) {
		agg, err := projects.Get(ctx, callerFrom(ctx), input.ProjectID)
		if err != nil {
			return errorResult(err), report.Summary{}, nil
		}
		now := time.Now()
		return nil, report.ProjectSummary(agg, engine.Measure(agg, now), now), nil
	}
}

func projectRiskHandler(projects ProjectService, engine *analytics.Engine) sdkmcp.ToolHandlerFor[ProjectIDInput, analytics.RiskAssessment] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectIDInput) (*sdkmcp.CallToolResult, analytics.RiskAssessment, error) {
		agg, err := projects.Get(ctx, callerFrom(ctx), input.ProjectID)
		if err != nil {
			return errorResult(err), analytics.RiskAssessment{}, nil
		}
		return nil, engine.Assess(agg, time.Now()), nil
	}
}

// DashboardResult pairs the aggregate numbers with a rendered text block.
type DashboardResult struct {
	Overview *analytics.DashboardOverview `json:"overview"`
	Rendered string                       `json:"rendered"`
}

func dashboardOverviewHandler(svc AnalyticsService) sdkmcp.ToolHandlerFor[EmptyInput, DashboardResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, DashboardResult, error) {
		caller := callerFrom(ctx)
		overview, err := svc.DashboardOverview(ctx, caller)
		if err != nil {
			return errorResult(err), DashboardResult{}, nil
		}
		return nil, DashboardResult{
			Overview: overview,
			Rendered: report.DashboardText(caller.ID, overview),
		}, nil
	}
}

// PeriodInput is a closed date range.
type PeriodInput struct {
	StartDate string `json:"start_date" jsonschema:"range start, YYYY-MM-DD"`
	EndDate   string `json:"end_date" jsonschema:"range end, YYYY-MM-DD"`
}

// PeriodStatsResult lists projects created inside the requested range.
type PeriodStatsResult struct {
	Period        string               `json:"period"`
	TotalProjects int                  `json:"total_projects"`
	Projects      []project.PeriodStat `json:"projects"`
}

func statsByPeriodHandler(projects ProjectService) sdkmcp.ToolHandlerFor[PeriodInput, PeriodStatsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input PeriodInput) (*sdkmcp.CallToolResult, PeriodStatsResult, error) {
		start, err := time.Parse(dateLayout, input.StartDate)
		if err != nil {
			return errorResult(fmt.Errorf("%w: start_date must be YYYY-MM-DD", project.ErrInvalidInput)), PeriodStatsResult{}, nil
		}
		end, err := time.Parse(dateLayout, input.EndDate)
		if err != nil {
			return errorResult(fmt.Errorf("%w: end_date must be YYYY-MM-DD", project.ErrInvalidInput)), PeriodStatsResult{}, nil
		}

		stats, err := projects.StatsByPeriod(ctx, callerFrom(ctx), start, end)
		if err != nil {
			return errorResult(err), PeriodStatsResult{}, nil
		}
		return nil, PeriodStatsResult{
			Period:        input.StartDate + " to " + input.EndDate,
			TotalProjects: len(stats),
			Projects:      stats,
		}, nil
	}
}

// SuggestTasksInput describes the project to plan.
type SuggestTasksInput struct {
	ProjectDescription string `json:"project_description" jsonschema:"free-text description of the project"`
	ModuleCount        int    `json:"module_count,omitempty" jsonschema:"number of modules to propose (default 3)"`
	ProjectID          string `json:"project_id,omitempty" jsonschema:"existing project to attach suggestions to"`
}

// SuggestTasksResult is the proposed module/task plan.
type SuggestTasksResult struct {
	Modules []suggest.ModulePlan `json:"modules"`
}

func suggestTasksHandler(svc SuggestService) sdkmcp.ToolHandlerFor[SuggestTasksInput, SuggestTasksResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SuggestTasksInput) (*sdkmcp.CallToolResult, SuggestTasksResult, error) {
		modules, err := svc.Suggest(ctx, callerFrom(ctx), suggest.Request{
			Description: input.ProjectDescription,
			ModuleCount: input.ModuleCount,
			ProjectID:   input.ProjectID,
		})
		if err != nil {
			return errorResult(err), SuggestTasksResult{}, nil
		}
		return nil, SuggestTasksResult{Modules: modules}, nil
	}
}

// EmailDraftInput describes the email to draft.
type EmailDraftInput struct {
	ProjectID     string `json:"project_id" jsonschema:"project the email is about"`
	RecipientName string `json:"recipient_name" jsonschema:"name used in the salutation"`
	EmailType     string `json:"email_type" jsonschema:"REMINDER, UPDATE, or PAYMENT_REQUEST"`
	Tone          string `json:"tone" jsonschema:"FORMAL or FRIENDLY"`
}

func emailDraftHandler(projects ProjectService, engine *analytics.Engine) sdkmcp.ToolHandlerFor[EmailDraftInput, report.Email] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EmailDraftInput) (*sdkmcp.CallToolResult, report.Email, error) {
		if !report.ValidEmailType(input.EmailType) {
			return errorResult(fmt.Errorf("%w: unknown email_type %q", project.ErrInvalidInput, input.EmailType)), report.Email{}, nil
		}
		if !report.ValidTone(input.Tone) {
			return errorResult(fmt.Errorf("%w: unknown tone %q", project.ErrInvalidInput, input.Tone)), report.Email{}, nil
		}

		agg, err := projects.Get(ctx, callerFrom(ctx), input.ProjectID)
		if err != nil {
			return errorResult(err), report.Email{}, nil
		}

		metrics := engine.Measure(agg, time.Now())
		return nil, report.DraftEmail(report.EmailInput{
			RecipientName: input.RecipientName,
			EmailType:     input.EmailType,
			Tone:          input.Tone,
			ProjectName:   agg.Name,
			Progress:      int(metrics.TaskVelocity * 100),
		}), nil
	}
}

// InvoiceIDInput identifies an invoice.
type InvoiceIDInput struct {
	InvoiceID string `json:"invoice_id" jsonschema:"the invoice identifier"`
}

func explainInvoiceHandler(svc FinanceService) sdkmcp.ToolHandlerFor[InvoiceIDInput, report.InvoiceExplanation] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input InvoiceIDInput) (*sdkmcp.CallToolResult, report.InvoiceExplanation, error) {
		detail, err := svc.InvoiceDetail(ctx, callerFrom(ctx), input.InvoiceID)
		if err != nil {
			return errorResult(err), report.InvoiceExplanation{}, nil
		}
		return nil, report.ExplainInvoice(detail), nil
	}
}

// ClientListResult lists clients.
type ClientListResult struct {
	Total   int             `json:"total"`
	Clients []client.Client `json:"clients"`
}

func userClientsHandler(svc ClientService) sdkmcp.ToolHandlerFor[EmptyInput, ClientListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ClientListResult, error) {
		clients, err := svc.ListForCaller(ctx, callerFrom(ctx))
		if err != nil {
			return errorResult(err), ClientListResult{}, nil
		}
		return nil, ClientListResult{Total: len(clients), Clients: clients}, nil
	}
}

// RecentClientsInput bounds the recent-clients list.
type RecentClientsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum clients to return (default 5)"`
}

func recentClientsHandler(svc ClientService) sdkmcp.ToolHandlerFor[RecentClientsInput, ClientListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecentClientsInput) (*sdkmcp.CallToolResult, ClientListResult, error) {
		clients, err := svc.ListRecent(ctx, callerFrom(ctx), input.Limit)
		if err != nil {
			return errorResult(err), ClientListResult{}, nil
		}
		return nil, ClientListResult{Total: len(clients), Clients: clients}, nil
	}
}

// ClientIDInput identifies a client.
type ClientIDInput struct {
	ClientID string `json:"client_id" jsonschema:"the client identifier"`
}

// ClientHistoryResult lists engagements with one client.
type ClientHistoryResult struct {
	ClientID string                  `json:"client_id"`
	Total    int                     `json:"total"`
	Projects []client.ProjectHistory `json:"projects"`
}

func clientHistoryHandler(svc ClientService) sdkmcp.ToolHandlerFor[ClientIDInput, ClientHistoryResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ClientIDInput) (*sdkmcp.CallToolResult, ClientHistoryResult, error) {
		history, err := svc.History(ctx, callerFrom(ctx), input.ClientID)
		if err != nil {
			return errorResult(err), ClientHistoryResult{}, nil
		}
		return nil, ClientHistoryResult{ClientID: input.ClientID, Total: len(history), Projects: history}, nil
	}
}

// CreateProjectInput defines a new project.
type CreateProjectInput struct {
	Name        string  `json:"name" jsonschema:"project display name"`
	Description string  `json:"description,omitempty" jsonschema:"project description"`
	ClientID    string  `json:"client_id" jsonschema:"client the project is delivered to"`
	Budget      float64 `json:"budget,omitempty" jsonschema:"total budget"`
	StartDate   string  `json:"start_date,omitempty" jsonschema:"start date, YYYY-MM-DD (default today)"`
	EndDate     string  `json:"end_date,omitempty" jsonschema:"target end date, YYYY-MM-DD"`
}

// CreateProjectResult confirms creation.
type CreateProjectResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

func createProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[CreateProjectInput, CreateProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateProjectInput) (*sdkmcp.CallToolResult, CreateProjectResult, error) {
		start := time.Now()
		if input.StartDate != "" {
			parsed, err := time.Parse(dateLayout, input.StartDate)
			if err != nil {
				return errorResult(fmt.Errorf("%w: start_date must be YYYY-MM-DD", project.ErrInvalidInput)), CreateProjectResult{}, nil
			}
			start = parsed
		}

		var end *time.Time
		if input.EndDate != "" {
			parsed, err := time.Parse(dateLayout, input.EndDate)
			if err != nil {
				return errorResult(fmt.Errorf("%w: end_date must be YYYY-MM-DD", project.ErrInvalidInput)), CreateProjectResult{}, nil
			}
			end = &parsed
		}

		agg, err := projects.Create(ctx, callerFrom(ctx), project.CreateRequest{
			Name:        input.Name,
			Description: input.Description,
			ClientID:    input.ClientID,
			Budget:      input.Budget,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			return errorResult(err), CreateProjectResult{}, nil
		}

		result := CreateProjectResult{
			ID:        agg.ID,
			Name:      agg.Name,
			Status:    string(agg.Status),
			ClientID:  agg.ClientID,
			StartDate: agg.StartDate.Format(dateLayout),
		}
		if agg.EndDate != nil {
			result.EndDate = agg.EndDate.Format(dateLayout)
		}
		return nil, result, nil
	}
}

// DeleteProjectResult confirms deletion.
type DeleteProjectResult struct {
	ProjectID string `json:"project_id"`
	Deleted   bool   `json:"deleted"`
}

func deleteProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ProjectIDInput, DeleteProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectIDInput) (*sdkmcp.CallToolResult, DeleteProjectResult, error) {
		if err := projects.Delete(ctx, callerFrom(ctx), input.ProjectID); err != nil {
			return errorResult(err), DeleteProjectResult{}, nil
		}
		return nil, DeleteProjectResult{ProjectID: input.ProjectID, Deleted: true}, nil
	}
}

// UpdateTaskStatusInput moves a task to a new status.
type UpdateTaskStatusInput struct {
	TaskID string `json:"task_id" jsonschema:"the task identifier"`
	Status string `json:"status" jsonschema:"TODO, INPROGRESS, or COMPLETED"`
}

func updateTaskStatusHandler(projects ProjectService) sdkmcp.ToolHandlerFor[UpdateTaskStatusInput, project.Task] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateTaskStatusInput) (*sdkmcp.CallToolResult, project.Task, error) {
		task, err := projects.UpdateTaskStatus(ctx, callerFrom(ctx), input.TaskID, project.TaskStatus(input.Status))
		if err != nil {
			return errorResult(err), project.Task{}, nil
		}
		return nil, *task, nil
	}
}

// AddCommentInput appends to a project discussion.
type AddCommentInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
	Content   string `json:"content" jsonschema:"comment text"`
}

func addCommentHandler(projects ProjectService) sdkmcp.ToolHandlerFor[AddCommentInput, project.Comment] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input AddCommentInput) (*sdkmcp.CallToolResult, project.Comment, error) {
		comment, err := projects.AddComment(ctx, callerFrom(ctx), input.ProjectID, input.Content)
		if err != nil {
			return errorResult(err), project.Comment{}, nil
		}
		return nil, *comment, nil
	}
}
