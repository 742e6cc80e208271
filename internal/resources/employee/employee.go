// Package employee wraps the /employees endpoints. Every call expects the
// {success, message, data} envelope and fails with the server message, or the
// operation's default message, when success is false.
package employee

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/okian/smarthrm/pkg/metrics"
)

// Default failure messages.
const (
	MsgList        = "获取员工列表失败"
	MsgDetail      = "获取员工详情失败"
	MsgFormOptions = "获取表单选项失败"
	MsgAdd         = "新增员工失败"
	MsgUpdate      = "更新员工失败"
	MsgDelete      = "删除员工失败"

	resource = "employees"

	// allPageSize is large enough to fetch every employee in one page.
	allPageSize = 9999
)

// Doer sends a descriptor through the request pipeline.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (pipeline.Reply, error)
}

// ListParams filters and pages the employee list. Zero values are not sent.
type ListParams struct {
	EmpName  string
	PageNum  int
	PageSize int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.EmpName != "" {
		v.Set("empName", p.EmpName)
	}
	if p.PageNum > 0 {
		v.Set("pageNum", strconv.Itoa(p.PageNum))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

// Result is the envelope returned by write operations.
type Result = envelope.Envelope[json.RawMessage]

// Client is the employee module.
type Client struct {
	doer Doer
}

// New creates a Client sending through doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

// List returns one page of employees.
func (c *Client) List(ctx context.Context, p ListParams) (model.EmployeePage, error) {
	return unwrap[model.EmployeePage](ctx, c, transport.Get("/employees/", p.values()), MsgList)
}

// All returns every employee in a single oversized page.
func (c *Client) All(ctx context.Context) (model.EmployeePage, error) {
	return c.List(ctx, ListParams{PageNum: 1, PageSize: allPageSize})
}

// Get returns the employee with the form options and linked ids.
func (c *Client) Get(ctx context.Context, id int) (model.EmployeeDetail, error) {
	return unwrap[model.EmployeeDetail](ctx, c, transport.Get("/employees/"+strconv.Itoa(id), nil), MsgDetail)
}

// FormOptions returns the choices offered when creating an employee.
func (c *Client) FormOptions(ctx context.Context) (model.FormOptions, error) {
	return unwrap[model.FormOptions](ctx, c, transport.Get("/employees/form-options", nil), MsgFormOptions)
}

// Add creates an employee and returns the whole envelope.
func (c *Client) Add(ctx context.Context, in model.EmployeeInput) (Result, error) {
	return require(ctx, c, transport.Post("/employees/add", nil, in), MsgAdd)
}

// Update modifies an employee and returns the whole envelope.
func (c *Client) Update(ctx context.Context, in model.EmployeeInput) (Result, error) {
	return require(ctx, c, transport.Post("/employees/mod", nil, in), MsgUpdate)
}

// Delete removes an employee. extra is merged into the query after id.
func (c *Client) Delete(ctx context.Context, id int, extra url.Values) (Result, error) {
	params := url.Values{"id": {strconv.Itoa(id)}}
	for k, vs := range extra {
		if k == "id" {
			continue
		}
		params[k] = append([]string(nil), vs...)
	}
	return require(ctx, c, transport.Post("/employees/del", params, nil), MsgDelete)
}

func unwrap[T any](ctx context.Context, c *Client, req transport.Request, defaultMsg string) (T, error) {
	reply, err := c.doer.Do(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	data, err := envelope.Unwrap[T](reply, defaultMsg)
	observe(err)
	return data, err
}

func require(ctx context.Context, c *Client, req transport.Request, defaultMsg string) (Result, error) {
	reply, err := c.doer.Do(ctx, req)
	if err != nil {
		return Result{}, err
	}
	env, err := envelope.Require[json.RawMessage](reply, defaultMsg)
	observe(err)
	return env, err
}

func observe(err error) {
	if errors.Is(err, envelope.ErrFailure) {
		metrics.RecordEnvelopeFailure(resource)
	}
}
