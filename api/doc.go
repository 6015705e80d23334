// Package api provides the REST surface of the room server.
//
// The API is deliberately thin: gameplay happens over the websocket
// gateway, and REST only covers stateless lookups plus the websocket
// upgrade itself.
//
// Endpoints:
//
//	POST /api/rooms            create a room (bearer token required)
//	GET  /api/rooms/{code}     look up a room by code (public)
//	GET  /api/matches/recent   list recent finished matches (bearer token required)
//	GET  /ws?token=...         websocket attach (token verified before upgrade)
//
// Authentication resolves the bearer token to a stable identity through the
// auth verifier; an invalid token yields 401 and no operation is attempted.
package api
