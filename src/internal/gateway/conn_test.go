package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gorilla/websocket"
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/internal/gateway"
)

var upgrader = websocket.Upgrader{}

// newGatewayServer starts a websocket server that passes each established
// connection to handler.
func newGatewayServer(handler func(ws *websocket.Conn, r *http.Request)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			ws, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer ws.Close()

			handler(ws, r)
		},
	))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

var _ = Describe("Dial", func() {
	var logger = &twelf.StandardLogger{}

	config := func(server *httptest.Server) gateway.Config {
		return gateway.Config{
			Endpoint:    wsURL(server),
			Token:       "<token>",
			DialTimeout: 5 * time.Second,
			Logger:      logger,
		}
	}

	It("authenticates the handshake with the bot token", func() {
		headers := make(chan http.Header, 1)
		server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
			headers <- r.Header
		})
		defer server.Close()

		conn, err := gateway.Dial(context.Background(), config(server))

		Expect(err).ShouldNot(HaveOccurred())
		defer conn.Close()

		Expect((<-headers).Get("Authorization")).To(Equal("Bearer <token>"))
	})

	It("sends the last-seen marker when resuming", func() {
		headers := make(chan http.Header, 1)
		server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
			headers <- r.Header
		})
		defer server.Close()

		cfg := config(server)
		cfg.LastSeen = "envelope-42"

		conn, err := gateway.Dial(context.Background(), cfg)

		Expect(err).ShouldNot(HaveOccurred())
		defer conn.Close()

		Expect((<-headers).Get("guilded-last-message-id")).To(Equal("envelope-42"))
		Expect(conn.LastSeen()).To(Equal("envelope-42"))
	})

	It("omits the last-seen marker on a fresh connection", func() {
		headers := make(chan http.Header, 1)
		server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
			headers <- r.Header
		})
		defer server.Close()

		conn, err := gateway.Dial(context.Background(), config(server))

		Expect(err).ShouldNot(HaveOccurred())
		defer conn.Close()

		Expect((<-headers).Get("guilded-last-message-id")).To(Equal(""))
	})

	It("returns a ConnectionTimeoutError when the handshake stalls", func() {
		// A plain HTTP server that never answers the upgrade request.
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(time.Second)
			},
		))
		defer server.Close()

		cfg := gateway.Config{
			Endpoint:    wsURL(server),
			Token:       "<token>",
			DialTimeout: 50 * time.Millisecond,
			Logger:      logger,
		}

		_, err := gateway.Dial(context.Background(), cfg)

		Expect(guilded.IsConnectionTimeout(err)).To(BeTrue())
	})
})

var _ = Describe("Conn", func() {
	var logger = &twelf.StandardLogger{}

	dial := func(server *httptest.Server) *gateway.Conn {
		conn, err := gateway.Dial(context.Background(), gateway.Config{
			Endpoint:    wsURL(server),
			Token:       "<token>",
			DialTimeout: 5 * time.Second,
			Logger:      logger,
		})
		Expect(err).ShouldNot(HaveOccurred())
		return conn
	}

	Describe("ReadEnvelope", func() {
		It("decodes envelopes and records the last-seen marker", func() {
			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.WriteJSON(map[string]interface{}{
					"op": 0,
					"t":  "ChatMessageCreated",
					"d":  map[string]interface{}{"id": "message-1"},
					"s":  "envelope-1",
				})
				time.Sleep(100 * time.Millisecond)
			})
			defer server.Close()

			conn := dial(server)
			defer conn.Close()

			env, err := conn.ReadEnvelope()

			Expect(err).ShouldNot(HaveOccurred())
			Expect(env.Op).To(Equal(gateway.OpEvent))
			Expect(env.Type).To(Equal("ChatMessageCreated"))
			Expect(env.Data["id"]).To(Equal("message-1"))
			Expect(conn.LastSeen()).To(Equal("envelope-1"))
		})

		It("retains the previous marker for envelopes without an ID", func() {
			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.WriteJSON(map[string]interface{}{"op": 0, "t": "A", "s": "envelope-1"})
				ws.WriteJSON(map[string]interface{}{"op": 0, "t": "B"})
				time.Sleep(100 * time.Millisecond)
			})
			defer server.Close()

			conn := dial(server)
			defer conn.Close()

			_, err := conn.ReadEnvelope()
			Expect(err).ShouldNot(HaveOccurred())

			_, err = conn.ReadEnvelope()
			Expect(err).ShouldNot(HaveOccurred())

			Expect(conn.LastSeen()).To(Equal("envelope-1"))
		})

		It("answers pings transparently", func() {
			pong := make(chan struct{}, 1)

			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.SetPongHandler(func(string) error {
					pong <- struct{}{}
					return nil
				})

				ws.WriteControl(
					websocket.PingMessage,
					nil,
					time.Now().Add(time.Second),
				)
				ws.WriteJSON(map[string]interface{}{"op": 0, "t": "A"})

				// Pongs are only surfaced by a read.
				ws.SetReadDeadline(time.Now().Add(time.Second))
				ws.ReadMessage()
			})
			defer server.Close()

			conn := dial(server)
			defer conn.Close()

			_, err := conn.ReadEnvelope()
			Expect(err).ShouldNot(HaveOccurred())

			Eventually(pong).Should(Receive())
		})

		It("classifies a remote close frame as an abnormal closure", func() {
			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(4000, "going away"),
					time.Now().Add(time.Second),
				)
				time.Sleep(100 * time.Millisecond)
			})
			defer server.Close()

			conn := dial(server)
			defer conn.Close()

			_, err := conn.ReadEnvelope()

			Expect(guilded.IsAbnormalClosure(err)).To(BeTrue())
			Expect(err.(guilded.AbnormalClosureError).Code).To(Equal(4000))
		})

		It("reports reads after a local close as ErrConnClosed", func() {
			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.SetReadDeadline(time.Now().Add(time.Second))
				ws.ReadMessage()
			})
			defer server.Close()

			conn := dial(server)
			conn.Close()

			_, err := conn.ReadEnvelope()

			Expect(err).To(Equal(gateway.ErrConnClosed))
		})
	})

	Describe("Close", func() {
		It("is idempotent", func() {
			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.SetReadDeadline(time.Now().Add(time.Second))
				ws.ReadMessage()
			})
			defer server.Close()

			conn := dial(server)

			conn.Close()
			conn.Close()
		})

		It("sends a close frame to the server", func() {
			codes := make(chan int, 1)

			server := newGatewayServer(func(ws *websocket.Conn, r *http.Request) {
				ws.SetReadDeadline(time.Now().Add(time.Second))

				_, _, err := ws.ReadMessage()
				if e, ok := err.(*websocket.CloseError); ok {
					codes <- e.Code
				}
			})
			defer server.Close()

			conn := dial(server)
			conn.Close()

			Eventually(codes).Should(Receive(Equal(websocket.CloseNormalClosure)))
		})
	})
})
