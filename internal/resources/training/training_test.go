package training_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/okian/smarthrm/internal/model"
	"github.com/okian/smarthrm/internal/pipeline"
	"github.com/okian/smarthrm/internal/resources/training"
	"github.com/okian/smarthrm/internal/transport"
	. "github.com/smartystreets/goconvey/convey"
)

type stubDoer struct {
	seen []transport.Request
}

func (s *stubDoer) Do(_ context.Context, req transport.Request) (pipeline.Reply, error) {
	s.seen = append(s.seen, req)
	return pipeline.Reply{Kind: pipeline.KindMessage}, nil
}

func TestTrainingRequests(t *testing.T) {
	Convey("Given a training client", t, func() {
		ctx := context.Background()
		doer := &stubDoer{}
		c := training.New(doer)

		Convey("When listing the first page", func() {
			_, _ = c.List(ctx, training.PageParams{Size: 10})

			Convey("Then the 0-based page should still be sent", func() {
				So(doer.seen[0].URL, ShouldEqual, "/training/list")
				So(doer.seen[0].Params.Get("page"), ShouldEqual, "0")
				So(doer.seen[0].Params.Get("size"), ShouldEqual, "10")
			})
		})

		Convey("When looking trainings up", func() {
			_, _ = c.Search(ctx, "Kubernetes")
			_, _ = c.BySkill(ctx, 2)
			So(doer.seen[0].URL, ShouldEqual, "/training/search")
			So(doer.seen[0].Params.Get("name"), ShouldEqual, "Kubernetes")
			So(doer.seen[1].URL, ShouldEqual, "/training/bySkill/2")
		})

		Convey("When writing", func() {
			tr := model.Training{TrainName: "Go 101", SkillID: 2}
			_, _ = c.Add(ctx, tr)
			_, _ = c.Update(ctx, tr)
			reply, err := c.Delete(ctx, 8)

			So(err, ShouldBeNil)
			So(reply.Kind, ShouldEqual, pipeline.KindMessage)
			So(doer.seen[0].URL, ShouldEqual, "/training/add")
			So(doer.seen[0].Body, ShouldResemble, tr)
			So(doer.seen[1].Method, ShouldEqual, http.MethodPost)
			So(doer.seen[1].URL, ShouldEqual, "/training/update")
			So(doer.seen[2].Method, ShouldEqual, http.MethodDelete)
			So(doer.seen[2].URL, ShouldEqual, "/training/delete/8")
		})
	})
}
