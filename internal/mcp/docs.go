package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `bizpilot keeps local copies of three remote business collections: tasks, clients and transactions.

Core concepts:
- Each collection is a local list mirroring a remote REST collection. list_* tools reload it wholesale.
- Creates are inserted at the front of the local list as soon as the server accepts them.
- A collection is "stale" when it was restored from a snapshot or a create got no entity back; list it to refresh.
- Validation runs locally first. A VALIDATION_FAILED error means nothing was sent.

Default workflow:
1) Orient: get_dashboard_summary (refresh=true reloads every collection first).
2) Read: list_tasks / list_clients / list_transactions.
3) Write: create_* / update_task / toggle_task_status / delete_*.
   - toggle_task_status needs the task in the local list; list_tasks first when unsure.
   - delete_* is safe to repeat.
4) Check: get_sync_status for staleness, get_recent_activity for the sync journal.

Error codes: VALIDATION_FAILED (see details.fields), NETWORK_ERROR (see details.status_code), NOT_FOUND.

Docs:
- bizpilot://docs/workflow
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
		URI:         "bizpilot://docs/workflow",
		Name:        "docs_workflow",
		Title:       "bizpilot workflow",
		Description: "Fields, defaults and error handling for the task, client and transaction tools.",
		Content: `# bizpilot workflow

## Tasks

- Fields: ` + "`title`" + ` (required), ` + "`description`" + `, ` + "`dueDate`" + ` (YYYY-MM-DD), ` + "`priority`" + `, ` + "`status`" + `.
- Priority: high, medium, low. Defaults to medium.
- Status: pending, in-progress, scheduled, waiting, completed. Defaults to pending.
- ` + "`toggle_task_status`" + ` moves pending to completed and anything else back to pending.
- ` + "`update_task`" + ` sends only the fields you pass.

## Clients

- Fields: ` + "`name`" + `, ` + "`company`" + `, ` + "`email`" + ` (all required), ` + "`phone`" + `, ` + "`status`" + `.
- Status: active or prospect. Defaults to active.

## Transactions

- Fields: ` + "`description`" + ` (required), ` + "`type`" + ` (income or expense, default income), ` + "`amount`" + ` (> 0), ` + "`date`" + ` (YYYY-MM-DD, required).
- Amounts are decimals; pass a number or a string such as "1250.50".

## Signup

- Fields: ` + "`fullName`" + `, ` + "`email`" + `, ` + "`role`" + ` (owner or employee), ` + "`password`" + ` (at least 8 characters).
- Set ` + "`generate_password`" + ` to have one generated; it is returned once in the result.

## Errors

- VALIDATION_FAILED: the draft was rejected locally; ` + "`details.fields`" + ` lists each field. Nothing was sent.
- NETWORK_ERROR: the remote call failed or returned a non-success status. The local list is unchanged.
- NOT_FOUND: the id is not in the local list. Call the matching list tool and retry.

## Staleness

- After a restart collections are restored from the last snapshot and marked stale.
- A create the server acknowledged without a body is stored under a ` + "`local-`" + ` id until the next list.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
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
