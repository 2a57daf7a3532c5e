package client

import (
	"time"

	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = DescribeTable(
	"nextBackoff",
	func(failures int, expected time.Duration) {
		Expect(nextBackoff(failures)).To(Equal(expected))
	},
	Entry("first attempt", 0, 5*time.Second),
	Entry("one failure", 1, 10*time.Second),
	Entry("two failures", 2, 15*time.Second),
	Entry("ten failures", 10, 55*time.Second),
	Entry("at the cap", 23, 2*time.Minute),
	Entry("beyond the cap", 100, 2*time.Minute),
)
