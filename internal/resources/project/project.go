// Package project wraps the /projectmatch endpoints: projects, their tasks and
// project matching. Replies are passed through.
package project

import (
	"context"
	"net/url"
	"strconv"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/transport"
)

// Match search types.
const (
	SearchByProjectName = "projectName"
	SearchByEmployee    = "empId"
)

// Doer sends a descriptor through the request pipeline.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (pipeline.Reply, error)
}

// Client is the project module.
type Client struct {
	doer Doer
}

// New creates a Client sending through doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) do(ctx context.Context, req transport.Request) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, req))
}

// All lists every project.
func (c *Client) All(ctx context.Context) (pipeline.Reply, error) {
	return c.do(ctx, transport.Get("/projectmatch/projects", nil))
}

func (c *Client) Create(ctx context.Context, p model.Project) (pipeline.Reply, error) {
	return c.do(ctx, transport.Post("/projectmatch/create", nil, p))
}

func (c *Client) Update(ctx context.Context, p model.Project) (pipeline.Reply, error) {
	return c.do(ctx, transport.Put("/projectmatch/update", p))
}

func (c *Client) Delete(ctx context.Context, id int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Delete("/projectmatch/delete/"+strconv.Itoa(id)))
}

// DeleteBatch removes several projects; the ids are sent as a JSON array.
func (c *Client) DeleteBatch(ctx context.Context, ids []int) (pipeline.Reply, error) {
	if ids == nil {
		ids = []int{}
	}
	return c.do(ctx, transport.Post("/projectmatch/delete/batch", nil, ids))
}

func (c *Client) Detail(ctx context.Context, id int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Get("/projectmatch/detail/"+strconv.Itoa(id), nil))
}

// MatchByProjectName matches projects whose name contains name.
func (c *Client) MatchByProjectName(ctx context.Context, name string) (pipeline.Reply, error) {
	return c.match(ctx, SearchByProjectName, name)
}

// MatchByEmployee matches the projects an employee takes part in.
func (c *Client) MatchByEmployee(ctx context.Context, empID int) (pipeline.Reply, error) {
	return c.match(ctx, SearchByEmployee, strconv.Itoa(empID))
}

func (c *Client) match(ctx context.Context, searchType, value string) (pipeline.Reply, error) {
	params := url.Values{"searchType": {searchType}, "searchValue": {value}}
	return c.do(ctx, transport.Post("/projectmatch/", params, nil))
}

// Tasks lists every task of a project.
func (c *Client) Tasks(ctx context.Context, projID int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Get(taskPath(projID, ""), nil))
}

func (c *Client) PendingTasks(ctx context.Context, projID int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Get(taskPath(projID, "/pending"), nil))
}

func (c *Client) CompletedTasks(ctx context.Context, projID int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Get(taskPath(projID, "/completed"), nil))
}

func (c *Client) CreateTask(ctx context.Context, t model.Task) (pipeline.Reply, error) {
	return c.do(ctx, transport.Post("/projectmatch/tasks/create", nil, t))
}

func (c *Client) UpdateTask(ctx context.Context, t model.Task) (pipeline.Reply, error) {
	return c.do(ctx, transport.Put("/projectmatch/tasks/update", t))
}

func (c *Client) DeleteTask(ctx context.Context, id int) (pipeline.Reply, error) {
	return c.do(ctx, transport.Delete("/projectmatch/tasks/delete/"+strconv.Itoa(id)))
}

func taskPath(projID int, suffix string) string {
	return "/projectmatch/tasks/" + strconv.Itoa(projID) + suffix
}
