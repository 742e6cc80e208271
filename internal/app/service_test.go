package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/smarthrm/internal/app"
	"github.com/okian/smarthrm/internal/config"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/transport"
	. "github.com/smartystreets/goconvey/convey"
)

func backend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hr/employees/":
			_, _ = w.Write([]byte(`{"success":true,"data":{"employees":[{"_id":1,"empName":"Li"}],"pageNum":1,"pageSize":10,"totalPages":1,"totalElements":1}}`))
		case "/hr/skill/delete/1":
			_, _ = w.Write([]byte(`删除失败`))
		case "/hr/skill/add":
			_, _ = w.Write([]byte(`保存成功`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then every module should be ready", func() {
			So(svc.Pipeline(), ShouldNotBeNil)
			So(svc.Employees(), ShouldNotBeNil)
			So(svc.Departments(), ShouldNotBeNil)
			So(svc.Skills(), ShouldNotBeNil)
			So(svc.Trainings(), ShouldNotBeNil)
			So(svc.Projects(), ShouldNotBeNil)
			So(svc.SkillMatch(), ShouldNotBeNil)
			So(svc.Notifications().Entries(), ShouldBeEmpty)

			stats := svc.GetStats()
			So(stats["apiRoot"], ShouldEqual, "/api")
			So(stats["timeoutMs"], ShouldEqual, int64(10000))
			So(stats["started"], ShouldBeFalse)
		})
	})
}

func TestService_Calls(t *testing.T) {
	Convey("Given a service configured for a test backend", t, func() {
		srv := backend()
		defer srv.Close()

		cfg := config.New()
		cfg.BaseURL = srv.URL
		cfg.APIRoot = "/hr"
		cfg.TimeoutMS = 2000
		cfg.NotificationHistory = 1

		var intercepted []string
		extra := notify.NewRecorder(0)
		svc := service.New(
			service.FromConfig(cfg),
			service.WithNotifier(extra),
			service.WithRequestInterceptor(func(_ context.Context, r transport.Request) (transport.Request, error) {
				intercepted = append(intercepted, r.URL)
				return r, nil
			}),
		)
		ctx := context.Background()

		Convey("When listing employees", func() {
			page, err := svc.Employees().List(ctx, employee.ListParams{PageNum: 1, PageSize: 10})

			Convey("Then the call should go through the interceptor to the configured root", func() {
				So(err, ShouldBeNil)
				So(page.Employees[0].EmpName, ShouldEqual, "Li")
				So(intercepted, ShouldResemble, []string{"/employees/"})
			})
		})

		Convey("When calls raise notifications", func() {
			_, _ = svc.Skills().Delete(ctx, 1)
			_, err := svc.Skills().Add(ctx, model.Skill{SkillName: "Go"})

			Convey("Then every sink should see them and the recorder keep the newest", func() {
				So(err, ShouldBeNil)
				So(extra.Count(notify.LevelError), ShouldEqual, 1)
				So(extra.Count(notify.LevelSuccess), ShouldEqual, 1)
				entries := svc.Notifications().Entries()
				So(len(entries), ShouldEqual, 1)
				So(entries[0].Message, ShouldEqual, "保存成功")
			})
		})

		Convey("When exposing console dependencies", func() {
			deps := svc.Console()
			So(deps.Employees, ShouldNotBeNil)
			So(deps.SkillMatch, ShouldNotBeNil)
			So(deps.Notifications, ShouldEqual, svc.Notifications())
			So(deps.Stats.GetStats()["apiRoot"], ShouldEqual, "/hr")
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		Convey("When starting and stopping it twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldBeTrue)
			svc.Stop()
			svc.Stop()
			So(svc.GetStats()["started"], ShouldBeFalse)
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
		})
	})
}
