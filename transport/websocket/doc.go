// Package websocket is the connection gateway.
//
// Each client attaches over a single websocket connection with an already
// verified identity; the gateway is unreachable without one. Inbound
// requests map one-to-one onto room service operations, and every state
// change the service produces fans out to the connections subscribed to the
// originating room's channel.
//
// Message Protocol:
//
// Inbound requests are JSON envelopes with a type field:
//
//	{"type": "createRoom"}
//	{"type": "createAiRoom"}
//	{"type": "joinRoom", "code": "AB12CD"}
//	{"type": "makeMove", "code": "AB12CD", "index": 4}
//	{"type": "voteRematch", "code": "AB12CD"}
//
// Outbound messages carry an event name and payload:
//
//	{"event": "moveMade", "data": {"board": [...], "turn": "O"}}
//
// Validation failures are answered with a roomError to the acting
// connection only; nothing is broadcast and no state changes.
//
// Connection Lifecycle:
//
// Subscription to a room channel is established when the connection creates
// or joins the room and is independent of the player/spectator role inside
// it. When a connection drops, its seats are marked disconnected (preserved
// for reconnection) and its subscriptions are removed.
package websocket
