package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// counterValue sums every sample of the named family whose labels match.
func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matched := true
			for _, lp := range metric.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					matched = false
				}
			}
			if !matched {
				continue
			}
			if c := metric.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if h := metric.GetHistogram(); h != nil {
				total += float64(h.GetSampleCount())
			}
		}
	}
	return total
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "smarthrm")
				So(manager.subsystem, ShouldEqual, "client")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("hr"),
				WithSubsystem("sdk"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then options should be applied", func() {
				So(manager.namespace, ShouldEqual, "hr")
				So(manager.subsystem, ShouldEqual, "sdk")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty option values are supplied", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "smarthrm")
				So(manager.subsystem, ShouldEqual, "client")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(reg))

		Convey("When recording API calls", func() {
			manager.RecordAPICall("employees", "GET", OutcomeOK, 12)
			manager.RecordAPICall("employees", "GET", OutcomeOK, 30)
			manager.RecordAPICall("skill", "DELETE", OutcomeTransportError, 10000)

			Convey("Then counters and histograms should reflect them", func() {
				So(counterValue(reg, "smarthrm_client_api_calls_total", map[string]string{"resource": "employees", "outcome": OutcomeOK}), ShouldEqual, 2)
				So(counterValue(reg, "smarthrm_client_api_calls_total", map[string]string{"outcome": OutcomeTransportError}), ShouldEqual, 1)
				So(counterValue(reg, "smarthrm_client_api_call_duration_milliseconds", map[string]string{"resource": "employees"}), ShouldEqual, 2)
			})
		})

		Convey("When recording notifications and envelope failures", func() {
			manager.RecordNotification(LevelError)
			manager.RecordNotification(LevelSuccess)
			manager.RecordNotification(LevelError)
			manager.RecordEnvelopeFailure("employees")

			Convey("Then they should be counted by label", func() {
				So(counterValue(reg, "smarthrm_client_notifications_total", map[string]string{"level": LevelError}), ShouldEqual, 2)
				So(counterValue(reg, "smarthrm_client_notifications_total", map[string]string{"level": LevelSuccess}), ShouldEqual, 1)
				So(counterValue(reg, "smarthrm_client_envelope_failures_total", nil), ShouldEqual, 1)
			})
		})

		Convey("When recording console traffic and page loads", func() {
			manager.RecordHTTPRequest("/employees", "GET", "200", 3)
			manager.RecordPageLoad("Employees")
			manager.UpdateSystem(1024, 8)

			Convey("Then console metrics should be present", func() {
				So(counterValue(reg, "smarthrm_console_http_requests_total", map[string]string{"status_code": "200"}), ShouldEqual, 1)
				So(counterValue(reg, "smarthrm_console_page_loads_total", map[string]string{"route": "Employees"}), ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		reg := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(reg), WithMetricsEnabled(false))

		Convey("When recording", func() {
			manager.RecordAPICall("employees", "GET", OutcomeOK, 1)
			manager.RecordNotification(LevelError)

			Convey("Then nothing should be observed", func() {
				So(counterValue(reg, "smarthrm_client_api_calls_total", nil), ShouldEqual, 0)
				So(counterValue(reg, "smarthrm_client_notifications_total", nil), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level helpers should not panic", func() {
			So(func() {
				RecordAPICall("departments", "POST", OutcomeMessageFailure, 5)
				RecordNotification(LevelError)
				RecordEnvelopeFailure("employees")
				RecordHTTPRequest("/nav", "GET", "200", 1)
				RecordPageLoad("Skills")
				UpdateSystem(1, 1)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
			So(counterValue(GetRegistry(), "smarthrm_client_api_calls_total", map[string]string{"resource": "departments"}), ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}
