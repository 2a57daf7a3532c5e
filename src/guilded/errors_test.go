package guilded_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/julien777z/guilded-go/src/guilded"
)

var _ = Describe("error predicates", func() {
	DescribeTable(
		"they match only their own error type",
		func(predicate func(error) bool, match error) {
			Expect(predicate(match)).To(BeTrue())
			Expect(predicate(errors.New("some other error"))).To(BeFalse())
		},
		Entry(
			"IsAuthenticationError",
			guilded.IsAuthenticationError,
			guilded.AuthenticationError{Message: "no token"},
		),
		Entry(
			"IsConfigurationError",
			guilded.IsConfigurationError,
			guilded.ConfigurationError{Message: "bad handler"},
		),
		Entry(
			"IsConnectionTimeout",
			guilded.IsConnectionTimeout,
			guilded.ConnectionTimeoutError{Timeout: time.Minute},
		),
		Entry(
			"IsAbnormalClosure",
			guilded.IsAbnormalClosure,
			guilded.AbnormalClosureError{Code: 1006},
		),
		Entry(
			"IsHTTPError",
			guilded.IsHTTPError,
			guilded.HTTPError{Status: 500},
		),
		Entry(
			"IsHandlerError",
			guilded.IsHandlerError,
			guilded.HandlerError{Event: "message", Reason: "boom"},
		),
	)

	Describe("IsNotFound", func() {
		It("matches a 404 HTTPError", func() {
			Expect(guilded.IsNotFound(guilded.HTTPError{Status: 404})).To(BeTrue())
		})

		It("does not match other HTTP statuses", func() {
			Expect(guilded.IsNotFound(guilded.HTTPError{Status: 500})).To(BeFalse())
		})
	})
})

var _ = Describe("Member", func() {
	Describe("DisplayName", func() {
		It("prefers the nickname", func() {
			nickname := "The Countess"
			m := &guilded.Member{
				User:     guilded.User{ID: "user-1", Name: "ada"},
				Nickname: &nickname,
			}

			Expect(m.DisplayName()).To(Equal("The Countess"))
		})

		It("falls back to the user name", func() {
			m := &guilded.Member{
				User: guilded.User{ID: "user-1", Name: "ada"},
			}

			Expect(m.DisplayName()).To(Equal("ada"))
		})
	})
})
