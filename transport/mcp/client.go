package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/tictacroom/archive"
	"github.com/wricardo/tictacroom/game/engine"
	"github.com/wricardo/tictacroom/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API. The token is
// the bearer token used for authenticated endpoints.
func NewClient(baseURL, token string) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tic Tac Room",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tic Tac Room - MCP Interface

This is a thin client that proxies all requests to the REST API server.
Live play happens over the websocket; these tools cover room management
and match history.

AVAILABLE TOOLS:
- create_room: Create a new room (optionally against the AI)
- get_room: Look up a room by its invite code
- recent_matches: List recently finished matches

Room codes are 6-character invite codes and are case-insensitive.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Create a new game room and return its invite code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"vs_ai": map[string]interface{}{
					"type":        "boolean",
					"description": "Play against the AI opponent instead of waiting for a second player",
				},
			},
		},
	}, c.handleCreateRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get the current state of a room by its invite code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "Room invite code (case-insensitive)",
				},
			},
			Required: []string{"code"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "recent_matches",
		Description: "List recently finished matches, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return",
				},
			},
		},
	}, c.handleRecentMatches)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	vsAI, _ := args["vs_ai"].(bool)

	var response struct {
		Room *service.RoomView `json:"room"`
	}
	err := c.apiCall("POST", "/api/rooms", map[string]bool{"vs_ai": vsAI}, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created room: %s\n\n%s", response.Room.Code, formatRoomView(response.Room))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	code, _ := args["code"].(string)
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	var response struct {
		Room *service.RoomView `json:"room"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", code), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomView(response.Room)), nil
}

func (c *Client) handleRecentMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	path := "/api/matches/recent"
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", int(limit))
	}

	var response struct {
		Matches []*archive.MatchRecord `json:"matches"`
	}
	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMatches(response.Matches)), nil
}

// Formatting helpers

func formatRoomView(room *service.RoomView) string {
	if room == nil {
		return "No room data available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Room: %s\n", room.Code))
	mode := "player vs player"
	if room.VsAI {
		mode = "vs AI"
	}
	b.WriteString(fmt.Sprintf("Mode: %s | Created by: %s | Status: %s\n",
		mode, room.CreatedBy, outcomeLabel(room.Outcome)))

	b.WriteString("Players:\n")
	for _, p := range room.Players {
		status := "connected"
		if !p.Connected {
			status = "disconnected"
		}
		b.WriteString(fmt.Sprintf("- %s as %s (%s)\n", p.Identity, p.Symbol, status))
	}
	if len(room.Spectators) > 0 {
		b.WriteString(fmt.Sprintf("Spectators: %d\n", len(room.Spectators)))
	}

	b.WriteString("\n")
	b.WriteString(formatBoard(room.Board))
	if room.Outcome == engine.InProgress {
		b.WriteString(fmt.Sprintf("\nTurn: %s", room.Turn))
	}
	return b.String()
}

func formatBoard(board engine.Board) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			mark := board[row*3+col]
			if mark == engine.Empty {
				b.WriteString(".")
			} else {
				b.WriteString(string(mark))
			}
			if col < 2 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func outcomeLabel(outcome engine.Outcome) string {
	switch outcome {
	case engine.XWon:
		return "X won"
	case engine.OWon:
		return "O won"
	case engine.Draw:
		return "draw"
	default:
		return "in progress"
	}
}

func formatMatches(matches []*archive.MatchRecord) string {
	if len(matches) == 0 {
		return "No matches recorded yet."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Recent Matches (%d):\n\n", len(matches)))
	for _, m := range matches {
		outcome := ""
		switch m.Winner {
		case archive.WinnerX:
			outcome = fmt.Sprintf("%s (X) beat %s (O)", m.PlayerX, m.PlayerO)
		case archive.WinnerO:
			outcome = fmt.Sprintf("%s (O) beat %s (X)", m.PlayerO, m.PlayerX)
		default:
			outcome = fmt.Sprintf("%s (X) drew with %s (O)", m.PlayerX, m.PlayerO)
		}
		b.WriteString(fmt.Sprintf("- [%s] %s: %s\n",
			m.RoomCode, m.PlayedAt.Format("2006-01-02 15:04"), outcome))
	}
	return b.String()
}
