package options_test

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/guilded/options"
	opentracing "github.com/opentracing/opentracing-go"
)

var _ = Describe("NewOptions", func() {
	It("applies default values when no options are given", func() {
		o, err := options.NewOptions()

		Expect(err).ShouldNot(HaveOccurred())
		Expect(o.MaxMessages).To(Equal(1000))
		Expect(o.Reconnect).To(BeTrue())
		Expect(o.TeamConnections).To(BeTrue())
		Expect(o.Logger).NotTo(BeNil())
		Expect(o.Tracer).To(Equal(opentracing.NoopTracer{}))
		Expect(o.RESTEndpoint).To(Equal("https://www.guilded.gg/api"))
		Expect(o.GatewayEndpoint).To(Equal("wss://www.guilded.gg/websocket/v1"))
		Expect(o.DialTimeout).To(Equal(60 * time.Second))
		Expect(o.HTTPClient).To(Equal(http.DefaultClient))
	})

	Describe("MaxMessages", func() {
		It("overrides the default capacity", func() {
			o, err := options.NewOptions(options.MaxMessages(50))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.MaxMessages).To(Equal(50))
		})

		It("accepts zero to disable message caching", func() {
			o, err := options.NewOptions(options.MaxMessages(0))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.MaxMessages).To(Equal(0))
		})

		It("rejects negative values", func() {
			_, err := options.NewOptions(options.MaxMessages(-1))

			Expect(err).Should(HaveOccurred())
			Expect(guilded.IsConfigurationError(err)).To(BeTrue())
		})
	})

	Describe("Reconnect", func() {
		It("can disable reconnection", func() {
			o, err := options.NewOptions(options.Reconnect(false))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.Reconnect).To(BeFalse())
		})
	})

	Describe("DisableTeamConnections", func() {
		It("disables the team connections", func() {
			o, err := options.NewOptions(options.DisableTeamConnections())

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.TeamConnections).To(BeFalse())
		})
	})

	Describe("Logger", func() {
		It("overrides the default logger", func() {
			l := &twelf.StandardLogger{CaptureDebug: true}
			o, err := options.NewOptions(options.Logger(l))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.Logger).To(BeIdenticalTo(l))
		})
	})

	Describe("DialTimeout", func() {
		It("overrides the default timeout", func() {
			o, err := options.NewOptions(options.DialTimeout(10 * time.Second))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.DialTimeout).To(Equal(10 * time.Second))
		})

		It("rejects non-positive values", func() {
			_, err := options.NewOptions(options.DialTimeout(0))

			Expect(err).Should(HaveOccurred())
			Expect(guilded.IsConfigurationError(err)).To(BeTrue())
		})
	})

	Describe("RESTEndpoint", func() {
		It("rejects an empty endpoint", func() {
			_, err := options.NewOptions(options.RESTEndpoint(""))

			Expect(err).Should(HaveOccurred())
		})
	})
})
