// Package department wraps the /departments endpoints. Replies are returned as
// the pipeline produced them; callers interpret the envelope.
package department

import (
	"context"
	"net/url"
	"strconv"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/transport"
)

// Doer sends a descriptor through the request pipeline.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (pipeline.Reply, error)
}

// ListParams filters and pages the department list. Zero values are not sent.
type ListParams struct {
	SearchKey string
	PageNum   int
	PageSize  int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.SearchKey != "" {
		v.Set("searchKey", p.SearchKey)
	}
	if p.PageNum > 0 {
		v.Set("pageNum", strconv.Itoa(p.PageNum))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

// Client is the department module.
type Client struct {
	doer Doer
}

// New creates a Client sending through doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

// List returns a page of departments; the body decodes as model.DepartmentPage.
func (c *Client) List(ctx context.Context, p ListParams) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/departments/", p.values())))
}

func (c *Client) Get(ctx context.Context, id int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/departments/"+strconv.Itoa(id), nil)))
}

// Employees lists the members of a department.
func (c *Client) Employees(ctx context.Context, id int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/departments/"+strconv.Itoa(id)+"/employees", nil)))
}

func (c *Client) All(ctx context.Context) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/departments/all", nil)))
}

// Save creates the department when d.ID is nil and updates it otherwise.
func (c *Client) Save(ctx context.Context, d model.Department) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/departments/save", nil, d)))
}

// Delete removes a department; the id travels as a query parameter.
func (c *Client) Delete(ctx context.Context, id int) (pipeline.Reply, error) {
	params := url.Values{"id": {strconv.Itoa(id)}}
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/departments/delete", params, nil)))
}
