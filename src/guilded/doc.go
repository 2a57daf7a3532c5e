// Package guilded is a client library for the Guilded chat platform's bot
// API.
//
// It provides typed entities (users, members, teams, channels and messages),
// a thin REST wrapper, and a gateway connection that receives real-time
// events over a websocket and dispatches them to registered handlers.
//
// Clients are constructed with the client package:
//
//	c, err := client.New(token)
//	c.On(guilded.EventMessage, func(ctx context.Context, e *guilded.MessageEvent) {
//		// ...
//	})
//	err = c.Run(context.Background())
//
// Each client owns its own connection, cache and handler registry; multiple
// independent clients can coexist in one process.
package guilded
