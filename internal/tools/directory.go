package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfandino/daybook/internal/store"
)

// ─── People ──────────────────────────────────────────────────────────────────

// AddPersonTool handles the add_person MCP tool.
type AddPersonTool struct {
	store *store.Store
}

// NewAddPersonTool creates an AddPersonTool.
func NewAddPersonTool(s *store.Store) *AddPersonTool {
	return &AddPersonTool{store: s}
}

// Definition returns the MCP tool definition for add_person.
func (t *AddPersonTool) Definition() mcp.Tool {
	return mcp.NewTool("add_person",
		mcp.WithDescription("Add a contact to the daybook."),
		mcp.WithString("full_name",
			mcp.Required(),
			mcp.Description("The person's full name"),
		),
		mcp.WithString("email",
			mcp.Description("Email address"),
		),
		mcp.WithString("company",
			mcp.Description("Company or organization"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-text notes about the person"),
		),
	)
}

// Handle processes the add_person tool call.
func (t *AddPersonTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.store.AddPerson(store.AddPersonParams{
		FullName: req.GetString("full_name", ""),
		Email:    req.GetString("email", ""),
		Company:  req.GetString("company", ""),
		Notes:    req.GetString("notes", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

// ─── Employers, clients, projects ────────────────────────────────────────────

// AddEmployerTool handles the add_employer MCP tool.
type AddEmployerTool struct {
	store *store.Store
}

// NewAddEmployerTool creates an AddEmployerTool.
func NewAddEmployerTool(s *store.Store) *AddEmployerTool {
	return &AddEmployerTool{store: s}
}

// Definition returns the MCP tool definition for add_employer.
func (t *AddEmployerTool) Definition() mcp.Tool {
	return mcp.NewTool("add_employer",
		mcp.WithDescription("Add an employer. Clients hang off employers, projects off clients."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Employer name"),
		),
		mcp.WithString("website",
			mcp.Description("Employer website"),
		),
	)
}

// Handle processes the add_employer tool call.
func (t *AddEmployerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := t.store.AddEmployer(req.GetString("name", ""), req.GetString("website", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e)
}

// AddClientTool handles the add_client MCP tool.
type AddClientTool struct {
	store *store.Store
}

// NewAddClientTool creates an AddClientTool.
func NewAddClientTool(s *store.Store) *AddClientTool {
	return &AddClientTool{store: s}
}

// Definition returns the MCP tool definition for add_client.
func (t *AddClientTool) Definition() mcp.Tool {
	return mcp.NewTool("add_client",
		mcp.WithDescription("Add a client, optionally linked to an employer."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Client name"),
		),
		mcp.WithString("employer_id",
			mcp.Description("Employer this client belongs to"),
		),
		mcp.WithString("contact_email",
			mcp.Description("Primary contact email"),
		),
	)
}

// Handle processes the add_client tool call.
func (t *AddClientTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := t.store.AddClient(store.AddClientParams{
		Name:         req.GetString("name", ""),
		EmployerID:   req.GetString("employer_id", ""),
		ContactEmail: req.GetString("contact_email", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c)
}

// AddProjectTool handles the add_project MCP tool.
type AddProjectTool struct {
	store *store.Store
}

// NewAddProjectTool creates an AddProjectTool.
func NewAddProjectTool(s *store.Store) *AddProjectTool {
	return &AddProjectTool{store: s}
}

// Definition returns the MCP tool definition for add_project.
func (t *AddProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("add_project",
		mcp.WithDescription("Add a project. Work sessions and action items reference projects."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("client_id",
			mcp.Description("Client this project is for"),
		),
		mcp.WithString("status",
			mcp.Description("active (default), paused, or completed"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the add_project tool call.
func (t *AddProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.store.AddProject(store.AddProjectParams{
		Name:     req.GetString("name", ""),
		ClientID: req.GetString("client_id", ""),
		Status:   req.GetString("status", ""),
		Tags:     splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

// SetProjectStatusTool handles the set_project_status MCP tool.
type SetProjectStatusTool struct {
	store *store.Store
}

// NewSetProjectStatusTool creates a SetProjectStatusTool.
func NewSetProjectStatusTool(s *store.Store) *SetProjectStatusTool {
	return &SetProjectStatusTool{store: s}
}

// Definition returns the MCP tool definition for set_project_status.
func (t *SetProjectStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("set_project_status",
		mcp.WithDescription("Change a project's status."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status: active, paused, or completed"),
		),
	)
}

// Handle processes the set_project_status tool call.
func (t *SetProjectStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("project_id", "")
	status := req.GetString("status", "")
	if id == "" || status == "" {
		return mcp.NewToolResultError("'project_id' and 'status' are required"), nil
	}
	if err := t.store.SetProjectStatus(id, status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Project %s is now %s.", id, status)), nil
}
