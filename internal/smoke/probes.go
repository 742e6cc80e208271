package smoke

import (
	"context"

	service "github.com/okian/smarthrm/internal/app"
	"github.com/okian/smarthrm/internal/resources/department"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/resources/skill"
	"github.com/okian/smarthrm/internal/resources/training"
)

// Probe is one read-only call against the backend.
type Probe struct {
	Name string
	Call func(ctx context.Context) error
}

// Probes returns the read-only sweep over every list endpoint of svc.
func Probes(svc *service.Service) []Probe {
	return []Probe{
		{"employees.list", func(ctx context.Context) error {
			_, err := svc.Employees().List(ctx, employee.ListParams{PageNum: 1, PageSize: 10})
			return err
		}},
		{"employees.form_options", func(ctx context.Context) error {
			_, err := svc.Employees().FormOptions(ctx)
			return err
		}},
		{"departments.list", func(ctx context.Context) error {
			_, err := svc.Departments().List(ctx, department.ListParams{PageNum: 1, PageSize: 10})
			return err
		}},
		{"departments.all", func(ctx context.Context) error {
			_, err := svc.Departments().All(ctx)
			return err
		}},
		{"skills.list", func(ctx context.Context) error {
			_, err := svc.Skills().List(ctx, skill.PageParams{PageNum: 1, PageSize: 10})
			return err
		}},
		{"trainings.list", func(ctx context.Context) error {
			_, err := svc.Trainings().List(ctx, training.PageParams{Page: 0, Size: 10})
			return err
		}},
		{"projects.all", func(ctx context.Context) error {
			_, err := svc.Projects().All(ctx)
			return err
		}},
		{"skillmatch.skills", func(ctx context.Context) error {
			_, err := svc.SkillMatch().Skills(ctx)
			return err
		}},
		{"skillmatch.projects", func(ctx context.Context) error {
			_, err := svc.SkillMatch().Projects(ctx)
			return err
		}},
		{"skillmatch.departments", func(ctx context.Context) error {
			_, err := svc.SkillMatch().Departments(ctx)
			return err
		}},
	}
}
