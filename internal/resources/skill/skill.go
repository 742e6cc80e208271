// Package skill wraps the /skill endpoints. Replies are passed through.
package skill

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

// PageParams pages the skill list. Zero values are not sent.
type PageParams struct {
	PageNum  int
	PageSize int
}

func (p PageParams) values() url.Values {
	v := url.Values{}
	if p.PageNum > 0 {
		v.Set("pageNum", strconv.Itoa(p.PageNum))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

type Client struct {
	doer Doer
}

func New(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) List(ctx context.Context, p PageParams) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skill/list", p.values())))
}

// All lists skills without paging parameters.
func (c *Client) All(ctx context.Context) (pipeline.Reply, error) {
	return c.List(ctx, PageParams{})
}

// Search looks skills up by name.
func (c *Client) Search(ctx context.Context, name string) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skill/search", url.Values{"name": {name}})))
}

func (c *Client) Get(ctx context.Context, id int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skill/"+strconv.Itoa(id), nil)))
}

func (c *Client) Add(ctx context.Context, s model.Skill) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/skill/add", nil, s)))
}

func (c *Client) Update(ctx context.Context, s model.Skill) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/skill/update", nil, s)))
}

func (c *Client) Delete(ctx context.Context, id int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Delete("/skill/delete/"+strconv.Itoa(id))))
}
