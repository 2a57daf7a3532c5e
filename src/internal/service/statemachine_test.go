package service_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/julien777z/guilded-go/src/internal/service"
)

var _ = Describe("StateMachine", func() {
	It("runs states until one returns no successor", func() {
		var visited []string
		var sm *service.StateMachine

		second := func() (service.State, error) {
			visited = append(visited, "second")
			return nil, nil
		}

		first := func() (service.State, error) {
			visited = append(visited, "first")
			return second, nil
		}

		sm = service.NewStateMachine(first, nil)
		sm.Run()

		Expect(visited).To(Equal([]string{"first", "second"}))
		Expect(sm.Done()).To(BeClosed())
		Expect(sm.Err()).To(BeNil())
	})

	It("stops when a state returns an error", func() {
		expected := errors.New("<error>")

		state := func() (service.State, error) {
			return nil, expected
		}

		sm := service.NewStateMachine(state, nil)
		sm.Run()

		Expect(sm.Err()).To(Equal(expected))
	})

	It("passes the causal error to the finalizer", func() {
		expected := errors.New("<error>")
		var received error

		state := func() (service.State, error) {
			return nil, expected
		}

		finalizer := func(err error) error {
			received = err
			return err
		}

		sm := service.NewStateMachine(state, finalizer)
		sm.Run()

		Expect(received).To(Equal(expected))
		Expect(sm.Err()).To(Equal(expected))
	})

	It("closes the stop channels when it halts", func() {
		var sm *service.StateMachine

		state := func() (service.State, error) {
			return nil, nil
		}

		sm = service.NewStateMachine(state, nil)
		sm.Run()

		Expect(sm.Forceful).To(BeClosed())
		Expect(sm.Graceful).To(BeClosed())
	})

	Describe("Stop", func() {
		It("closes the forceful stop channel", func() {
			var sm *service.StateMachine

			state := func() (service.State, error) {
				<-sm.Forceful
				return nil, nil
			}

			sm = service.NewStateMachine(state, nil)

			go sm.Run()

			sm.Stop()

			Eventually(sm.Done()).Should(BeClosed())
		})

		It("is idempotent", func() {
			sm := service.NewStateMachine(
				func() (service.State, error) { return nil, nil },
				nil,
			)
			sm.Run()

			sm.Stop()
			sm.Stop()
		})
	})

	Describe("GracefulStop", func() {
		It("closes only the graceful stop channel", func() {
			var sm *service.StateMachine

			state := func() (service.State, error) {
				select {
				case <-sm.Graceful:
					return nil, nil
				case <-sm.Forceful:
					return nil, errors.New("stopped forcefully")
				}
			}

			sm = service.NewStateMachine(state, nil)

			go sm.Run()

			sm.GracefulStop()

			Eventually(sm.Done()).Should(BeClosed())
			Expect(sm.Err()).To(BeNil())
		})
	})
})
