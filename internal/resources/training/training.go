// Package training wraps the /training endpoints. Replies are passed through.
package training

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

// PageParams pages the training list. Page is 0-based and always sent; Size is
// sent when positive.
type PageParams struct {
	Page int
	Size int
}

func (p PageParams) values() url.Values {
	v := url.Values{"page": {strconv.Itoa(p.Page)}}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	return v
}

// Client is the training module.
type Client struct {
	doer Doer
}

// New creates a Client sending through doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) List(ctx context.Context, p PageParams) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/training/list", p.values())))
}

func (c *Client) Search(ctx context.Context, name string) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/training/search", url.Values{"name": {name}})))
}

// BySkill lists the trainings that teach a skill.
func (c *Client) BySkill(ctx context.Context, skillID int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/training/bySkill/"+strconv.Itoa(skillID), nil)))
}

func (c *Client) Add(ctx context.Context, t model.Training) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/training/add", nil, t)))
}

func (c *Client) Update(ctx context.Context, t model.Training) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/training/update", nil, t)))
}

func (c *Client) Delete(ctx context.Context, id int) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Delete("/training/delete/"+strconv.Itoa(id))))
}
