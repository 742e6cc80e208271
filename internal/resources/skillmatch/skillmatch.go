// Package skillmatch wraps the /skillmatch endpoints. Replies are passed through.
package skillmatch

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/transport"
	"github.com/samber/lo"
)

// Doer sends a descriptor through the request pipeline.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (pipeline.Reply, error)
}

// Requirement is one required skill with the lowest accepted proficiency.
type Requirement struct {
	SkillID        int
	MinProficiency int
}

// String formats r as "skillId:minProficiency".
func (r Requirement) String() string {
	return strconv.Itoa(r.SkillID) + ":" + strconv.Itoa(r.MinProficiency)
}

// Requirements formats each requirement for Match.
func Requirements(rs ...Requirement) []string {
	return lo.Map(rs, func(r Requirement, _ int) string { return r.String() })
}

// Client is the skill matching module.
type Client struct {
	doer Doer
}

// New creates a Client sending through doer.
func New(doer Doer) *Client {
	return &Client{doer: doer}
}

// Match finds employees holding the required skills. The requirements travel
// as one comma-joined requiredSkills query parameter.
func (c *Client) Match(ctx context.Context, required []string) (pipeline.Reply, error) {
	params := url.Values{"requiredSkills": {strings.Join(required, ",")}}
	return envelope.Passthrough(c.doer.Do(ctx, transport.Post("/skillmatch/", params, nil)))
}

func (c *Client) Skills(ctx context.Context) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skillmatch/skills", nil)))
}

func (c *Client) Projects(ctx context.Context) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skillmatch/projects", nil)))
}

func (c *Client) Departments(ctx context.Context) (pipeline.Reply, error) {
	return envelope.Passthrough(c.doer.Do(ctx, transport.Get("/skillmatch/departments", nil)))
}
