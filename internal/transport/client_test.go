package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/okian/smarthrm/internal/transport"
	. "github.com/smartystreets/goconvey/convey"
)

type captured struct {
	method      string
	path        string
	query       url.Values
	contentType string
	requestID   string
	custom      string
	body        []byte
}

func recordingServer(status int, reply string, seen *captured) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.Path
		seen.query = r.URL.Query()
		seen.contentType = r.Header.Get("Content-Type")
		seen.requestID = r.Header.Get(transport.HeaderRequestID)
		seen.custom = r.Header.Get("X-Client")
		seen.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
}

func TestRequestDescriptors(t *testing.T) {
	Convey("Given request descriptor constructors", t, func() {
		Convey("When building a GET with params", func() {
			params := url.Values{"pageNum": {"1"}}
			req := transport.Get("/employees/", params)
			params.Set("pageNum", "2")

			Convey("Then the descriptor should not see later changes to params", func() {
				So(req.Method, ShouldEqual, http.MethodGet)
				So(req.Params.Get("pageNum"), ShouldEqual, "1")
				So(req.Body, ShouldBeNil)
			})
		})

		Convey("When building write descriptors", func() {
			So(transport.Post("/skill/add", nil, map[string]string{"skillName": "Go"}).Method, ShouldEqual, http.MethodPost)
			So(transport.Put("/projectmatch/update", nil).Method, ShouldEqual, http.MethodPut)
			So(transport.Delete("/skill/delete/3").Method, ShouldEqual, http.MethodDelete)
		})

		Convey("When deriving the resource label", func() {
			So(transport.Get("/employees/7", nil).Resource(), ShouldEqual, "employees")
			So(transport.Get("/projectmatch/tasks/1/pending", nil).Resource(), ShouldEqual, "projectmatch")
			So(transport.Get("/", nil).Resource(), ShouldEqual, "root")
		})
	})
}

func TestClientDo(t *testing.T) {
	Convey("Given a client pointed at a test server", t, func() {
		ctx := context.Background()
		var seen captured

		Convey("When a GET succeeds", func() {
			srv := recordingServer(http.StatusOK, `{"success":true}`, &seen)
			defer srv.Close()

			c := transport.New(srv.URL, transport.WithHeader("X-Client", "smarthrm"))
			reply, err := c.Do(ctx, transport.Get("/employees/", url.Values{"empName": {"Li"}, "pageNum": {"1"}}))

			Convey("Then the API root, query and headers should be applied", func() {
				So(err, ShouldBeNil)
				So(reply.StatusCode, ShouldEqual, http.StatusOK)
				So(string(reply.Body), ShouldEqual, `{"success":true}`)
				So(seen.method, ShouldEqual, http.MethodGet)
				So(seen.path, ShouldEqual, "/api/employees/")
				So(seen.query.Get("empName"), ShouldEqual, "Li")
				So(seen.requestID, ShouldNotBeEmpty)
				So(seen.custom, ShouldEqual, "smarthrm")
				So(seen.contentType, ShouldBeEmpty)
			})
		})

		Convey("When a POST carries a JSON body", func() {
			srv := recordingServer(http.StatusOK, `ok`, &seen)
			defer srv.Close()

			c := transport.New(srv.URL+"/", transport.WithAPIRoot("/hr/"))
			_, err := c.Do(ctx, transport.Post("/departments/save", nil, map[string]any{"depName": "R&D"}))

			Convey("Then the body should be JSON encoded", func() {
				So(err, ShouldBeNil)
				So(seen.path, ShouldEqual, "/hr/departments/save")
				So(seen.contentType, ShouldEqual, "application/json")
				var got map[string]any
				So(json.Unmarshal(seen.body, &got), ShouldBeNil)
				So(got["depName"], ShouldEqual, "R&D")
			})
		})

		Convey("When the server answers with a non-2xx status", func() {
			srv := recordingServer(http.StatusBadRequest, `{"success":false,"message":"部门名称不能为空"}`, &seen)
			defer srv.Close()

			c := transport.New(srv.URL)
			reply, err := c.Do(ctx, transport.Post("/departments/save", nil, map[string]any{}))

			Convey("Then a transport error with the status should be returned", func() {
				So(reply, ShouldBeNil)
				So(errors.Is(err, transport.ErrTransport), ShouldBeTrue)
				var terr *transport.Error
				So(errors.As(err, &terr), ShouldBeTrue)
				So(terr.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(terr.Error(), ShouldEqual, "Request failed with status code 400")
				So(string(terr.Body), ShouldContainSubstring, "部门名称不能为空")
				So(terr.Timeout(), ShouldBeFalse)
			})
		})

		Convey("When the server is slower than the timeout", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			}))
			defer srv.Close()

			c := transport.New(srv.URL, transport.WithTimeout(50*time.Millisecond))
			_, err := c.Do(ctx, transport.Get("/skill/list", nil))

			Convey("Then a timeout transport error should be returned", func() {
				var terr *transport.Error
				So(errors.As(err, &terr), ShouldBeTrue)
				So(terr.Timeout(), ShouldBeTrue)
				So(terr.Error(), ShouldEqual, "timeout of 50ms exceeded")
				So(c.Timeout(), ShouldEqual, 50*time.Millisecond)
			})
		})

		Convey("When the backend is unreachable", func() {
			srv := httptest.NewServer(http.NotFoundHandler())
			addr := srv.URL
			srv.Close()

			c := transport.New(addr)
			_, err := c.Do(ctx, transport.Get("/skill/list", nil))

			Convey("Then a network transport error should be returned", func() {
				So(errors.Is(err, transport.ErrTransport), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "Network Error")
			})
		})

		Convey("When the reply body exceeds the size limit", func() {
			srv := recordingServer(http.StatusOK, `{"success":true,"data":[1,2,3]}`, &seen)
			defer srv.Close()

			c := transport.New(srv.URL, transport.WithMaxReplyBytes(8))
			reply, err := c.Do(ctx, transport.Get("/employees/", nil))

			Convey("Then the call should fail instead of returning a cut-off body", func() {
				So(reply, ShouldBeNil)
				So(errors.Is(err, transport.ErrTransport), ShouldBeTrue)
				So(errors.Is(err, transport.ErrReplyTooLarge), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "maxContentLength size of 8 exceeded")
			})
		})

		Convey("When the reply body is exactly at the size limit", func() {
			srv := recordingServer(http.StatusOK, `[1,2,3]`, &seen)
			defer srv.Close()

			c := transport.New(srv.URL, transport.WithMaxReplyBytes(7))
			reply, err := c.Do(ctx, transport.Get("/skill/list", nil))

			Convey("Then it should be returned whole", func() {
				So(err, ShouldBeNil)
				So(string(reply.Body), ShouldEqual, `[1,2,3]`)
			})
		})

		Convey("When the descriptor is malformed", func() {
			c := transport.New("http://127.0.0.1:1")
			_, err := c.Do(ctx, transport.Request{Method: http.MethodPatch, URL: "/skill/1"})

			Convey("Then it should be rejected before dispatch", func() {
				So(errors.Is(err, transport.ErrInvalidRequest), ShouldBeTrue)
				So(errors.Is(err, transport.ErrTransport), ShouldBeFalse)
			})
		})
	})
}

func TestClientEndpoint(t *testing.T) {
	Convey("Given a client", t, func() {
		c := transport.New("http://hr.local:8080", transport.WithAPIRoot(""))

		Convey("Then endpoints should join base, root, path and sorted query", func() {
			So(c.Endpoint(transport.Get("/training/list", url.Values{"size": {"10"}, "page": {"0"}})), ShouldEqual, "http://hr.local:8080/training/list?page=0&size=10")
		})
	})
}
