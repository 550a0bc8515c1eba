package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `crewbase manages projects, tasks, invoices, and clients for a freelance team.

Core concepts:
- Project: the unit of work. It has an owner, a client, optional team members, modules of tasks, invoices, payments, and comments.
- Every call runs as a caller identity. What a tool returns depends on the caller's relationship to the project: owner, client, or member. There is no way to widen access from inside a session.
- Analytics (summary, risk, dashboard) are computed fresh on every call from current data; nothing is cached between calls.

Typical workflow:
1) Orient: get_dashboard_overview for the caller's portfolio, or get_project_summary for one project.
2) Assess: get_project_risk for delay probability, budget health, and recommended actions.
3) Act: create_project, update_task_status, add_comment, delete_project.
4) Communicate: generate_email_draft, explain_invoice.
5) Clients: get_user_clients, get_recent_clients, get_client_history.

Error envelope: failed calls return {"code", "message"} with codes
INVALID_ARGUMENT, NOT_FOUND, NOT_AUTHORIZED, or INTERNAL. A NOT_AUTHORIZED
on a project read can mean either no access or no such project.

Transport notes:
- HTTP: pass the caller via X-User-Id and X-User-Role headers.
- Stdio: the caller is fixed by server configuration.
`

const policyDoc = `# Access model

Roles: ADMIN, USER, CLIENT, MEMBER. Project relationships: owner, client,
team member. Both are checked per call.

| Operation            | Owner | Client | Member | ADMIN |
|----------------------|-------|--------|--------|-------|
| Read project         | yes   | yes    | yes    | yes   |
| View financials      | yes   | yes    | no     | yes   |
| Mutate tasks         | yes   | no     | no     | yes   |
| Add comment          | yes   | yes    | yes    | yes   |
| Suggest for project  | yes   | no     | no     | yes   |
| Delete project       | yes   | no     | no     | no    |

Deleting a project is reserved for its owner. Client listing tools are
scoped to projects the caller owns and need no further checks.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "crewbase://docs/access-model",
		Name:        "access-model",
		Title:       "Access model",
		Description: "Roles, project relationships, and the per-operation policy table",
		Content:     policyDoc,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
