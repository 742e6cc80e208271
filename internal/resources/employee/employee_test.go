package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/okian/smarthrm/internal/envelope"
	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/notify"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/resources/employee"
	"github.com/okian/smarthrm/internal/transport"
	. "github.com/smartystreets/goconvey/convey"
)

type seen struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func backend(reply string, s *seen) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.method = r.Method
		s.path = r.URL.Path
		s.query = r.URL.Query()
		s.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
}

func client(srv *httptest.Server, rec *notify.Recorder) *employee.Client {
	return employee.New(pipeline.New(transport.New(srv.URL), pipeline.WithNotifier(rec)))
}

func TestEmployeeReads(t *testing.T) {
	Convey("Given an employee client", t, func() {
		ctx := context.Background()
		rec := notify.NewRecorder(0)
		var s seen

		Convey("When listing with a name filter", func() {
			srv := backend(`{"success":true,"data":{"employees":[{"_id":1,"empName":"Li","deptName":"R&D","deptType":"normal"}],"pageNum":1,"pageSize":10,"totalPages":1,"totalElements":1,"empName":"Li"}}`, &s)
			defer srv.Close()

			page, err := client(srv, rec).List(ctx, employee.ListParams{EmpName: "Li", PageNum: 1, PageSize: 10})

			Convey("Then the page data should be unwrapped", func() {
				So(err, ShouldBeNil)
				So(s.method, ShouldEqual, http.MethodGet)
				So(s.path, ShouldEqual, "/api/employees/")
				So(s.query.Get("empName"), ShouldEqual, "Li")
				So(s.query.Get("pageSize"), ShouldEqual, "10")
				So(page.TotalElements, ShouldEqual, 1)
				So(page.Employees[0].EmpName, ShouldEqual, "Li")
				So(page.Employees[0].DeptType, ShouldEqual, "normal")
				So(rec.Entries(), ShouldBeEmpty)
			})
		})

		Convey("When fetching every employee", func() {
			srv := backend(`{"success":true,"data":{"employees":[],"pageNum":1,"pageSize":9999}}`, &s)
			defer srv.Close()

			_, err := client(srv, rec).All(ctx)

			Convey("Then one oversized page should be requested", func() {
				So(err, ShouldBeNil)
				So(s.query.Get("pageNum"), ShouldEqual, "1")
				So(s.query.Get("pageSize"), ShouldEqual, "9999")
				So(s.query.Has("empName"), ShouldBeFalse)
			})
		})

		Convey("When the detail envelope reports failure with a message", func() {
			srv := backend(`{"success":false,"message":"员工不存在"}`, &s)
			defer srv.Close()

			_, err := client(srv, rec).Get(ctx, 9)

			Convey("Then the server message should be the error", func() {
				So(s.path, ShouldEqual, "/api/employees/9")
				So(errors.Is(err, envelope.ErrFailure), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "员工不存在")
			})
		})

		Convey("When the form options envelope reports failure without a message", func() {
			srv := backend(`{"success":false}`, &s)
			defer srv.Close()

			_, err := client(srv, rec).FormOptions(ctx)

			Convey("Then the default message should be the error", func() {
				So(s.path, ShouldEqual, "/api/employees/form-options")
				So(err.Error(), ShouldEqual, employee.MsgFormOptions)
			})
		})

		Convey("When the detail is returned", func() {
			srv := backend(`{"success":true,"data":{"employee":{"_id":3,"empName":"Wang"},"departments":[{"id":1,"depName":"R&D"}],"allSkills":[{"_id":2,"skillName":"Go"}],"existingProjectIds":[5],"existingSkillsStr":"2:4"}}`, &s)
			defer srv.Close()

			detail, err := client(srv, rec).Get(ctx, 3)

			Convey("Then the nested option lists should be decoded", func() {
				So(err, ShouldBeNil)
				So(detail.Employee.ID, ShouldEqual, 3)
				So(detail.Departments[0].DepName, ShouldEqual, "R&D")
				So(detail.AllSkills[0].SkillName, ShouldEqual, "Go")
				So(detail.ExistingProjectIDs, ShouldResemble, []int{5})
				So(detail.ExistingSkills, ShouldEqual, "2:4")
			})
		})
	})
}

func TestEmployeeWrites(t *testing.T) {
	Convey("Given an employee client", t, func() {
		ctx := context.Background()
		rec := notify.NewRecorder(0)
		var s seen

		Convey("When adding an employee successfully", func() {
			srv := backend(`{"success":true,"data":{"id":42}}`, &s)
			defer srv.Close()

			env, err := client(srv, rec).Add(ctx, model.EmployeeInput{Name: "Li", Department: "3"})

			Convey("Then the full envelope should be returned", func() {
				So(err, ShouldBeNil)
				So(s.method, ShouldEqual, http.MethodPost)
				So(s.path, ShouldEqual, "/api/employees/add")
				var sent map[string]any
				So(json.Unmarshal(s.body, &sent), ShouldBeNil)
				So(sent["name"], ShouldEqual, "Li")
				So(sent["department"], ShouldEqual, "3")
				So(env.Success, ShouldBeTrue)
				So(string(env.Data), ShouldEqual, `{"id":42}`)
			})
		})

		Convey("When an update fails validation", func() {
			srv := backend(`{"success":false,"message":"参数校验失败","errors":{"name":"姓名不能为空"}}`, &s)
			defer srv.Close()

			_, err := client(srv, rec).Update(ctx, model.EmployeeInput{ID: 7})

			Convey("Then the field errors should be available", func() {
				So(s.path, ShouldEqual, "/api/employees/mod")
				var ferr *envelope.FailureError
				So(errors.As(err, &ferr), ShouldBeTrue)
				So(ferr.Message, ShouldEqual, "参数校验失败")
				So(ferr.Fields["name"], ShouldEqual, "姓名不能为空")
			})
		})

		Convey("When deleting with extra parameters", func() {
			srv := backend(`{"success":true,"message":"删除成功"}`, &s)
			defer srv.Close()

			env, err := client(srv, rec).Delete(ctx, 7, url.Values{"force": {"true"}, "id": {"99"}})

			Convey("Then id and the extras should travel in the query", func() {
				So(err, ShouldBeNil)
				So(s.method, ShouldEqual, http.MethodPost)
				So(s.path, ShouldEqual, "/api/employees/del")
				So(s.query.Get("id"), ShouldEqual, "7")
				So(s.query.Get("force"), ShouldEqual, "true")
				So(len(s.body), ShouldEqual, 0)
				So(env.Message, ShouldEqual, "删除成功")
			})
		})

		Convey("When the backend answers with a plain failure string", func() {
			srv := backend(`删除失败`, &s)
			defer srv.Close()

			_, err := client(srv, rec).Delete(ctx, 7, nil)

			Convey("Then the pipeline failure should surface unchanged", func() {
				So(errors.Is(err, pipeline.ErrFailureMessage), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "删除失败")
				So(rec.Count(notify.LevelError), ShouldEqual, 1)
			})
		})

		Convey("When the backend answers with a plain success string", func() {
			srv := backend(`操作成功`, &s)
			defer srv.Close()

			_, err := client(srv, rec).Add(ctx, model.EmployeeInput{Name: "Li"})

			Convey("Then the missing envelope should fail with the default message", func() {
				So(err.Error(), ShouldEqual, employee.MsgAdd)
				So(rec.Count(notify.LevelSuccess), ShouldEqual, 1)
			})
		})
	})
}
