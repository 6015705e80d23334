// Package mcp exposes room management over the Model Context Protocol.
//
// The Client here is deliberately thin: every tool call proxies to the REST
// API rather than touching the game service directly, so MCP agents see
// exactly what HTTP clients see. Live play stays on the websocket; the MCP
// surface covers room creation, room inspection, and match history.
package mcp
