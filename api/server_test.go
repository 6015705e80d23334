package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/wricardo/tictacroom/archive"
	"github.com/wricardo/tictacroom/auth"
	"github.com/wricardo/tictacroom/game/service"
	"github.com/wricardo/tictacroom/game/session"
	"github.com/wricardo/tictacroom/transport/websocket"
)

type apiFixture struct {
	server   *Server
	verifier *auth.Verifier
	archiver *archive.FileArchive
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	verifier, err := auth.NewVerifier("test-secret")
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}
	archiver, err := archive.NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}

	hub := websocket.NewHub()
	rooms := session.NewManager(6)
	svc := service.NewRoomService(rooms, archiver, hub, 0)
	hub.SetService(svc)

	return &apiFixture{
		server:   NewServer(svc, hub, verifier, archiver, 50),
		verifier: verifier,
		archiver: archiver,
	}
}

func (f *apiFixture) token(t *testing.T, identity string) string {
	t.Helper()
	token, err := f.verifier.Sign(identity)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func TestGuestToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "POST", "/api/auth/guest", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Identity string `json:"identity"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !strings.HasPrefix(resp.Identity, "guest-") {
		t.Errorf("unexpected identity %q", resp.Identity)
	}

	got, err := f.verifier.Verify(resp.Token)
	if err != nil || got != resp.Identity {
		t.Errorf("token did not verify to %q: got %q, err %v", resp.Identity, got, err)
	}

	// The minted token must open the authenticated surface.
	create := f.do(t, "POST", "/api/rooms", resp.Token, "{}")
	if create.Code != http.StatusCreated {
		t.Errorf("expected 201 creating with guest token, got %d", create.Code)
	}
}

func TestCreateRoom(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("requires auth", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/rooms", "", "{}")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects bad token", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/rooms", "garbage", "{}")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("creates a room", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/rooms", f.token(t, "alice"), `{"vs_ai": true}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}

		var resp struct {
			Room *service.RoomView `json:"room"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}
		if resp.Room.Code == "" || !resp.Room.VsAI {
			t.Errorf("unexpected room %+v", resp.Room)
		}
		if resp.Room.CreatedBy != "alice" {
			t.Errorf("expected creator alice, got %q", resp.Room.CreatedBy)
		}
	})
}

func TestGetRoom(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, "POST", "/api/rooms", f.token(t, "alice"), "{}")
	var created struct {
		Room *service.RoomView `json:"room"`
	}
	json.Unmarshal(rec.Body.Bytes(), &created)

	t.Run("found, case-insensitive, no auth needed", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/rooms/"+strings.ToLower(created.Room.Code), "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/rooms/NOSUCH", "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestRecentMatches(t *testing.T) {
	f := newAPIFixture(t)

	for i := 0; i < 5; i++ {
		f.archiver.Record(&archive.MatchRecord{
			RoomCode: fmt.Sprintf("ROOM%02d", i),
			PlayerX:  "alice",
			PlayerO:  archive.AIOpponent,
			Winner:   archive.WinnerDraw,
			PlayedAt: time.Now(),
		})
	}

	t.Run("requires auth", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/matches/recent", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns newest first with limit", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/matches/recent?limit=2", f.token(t, "alice"), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			Matches []*archive.MatchRecord `json:"matches"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}
		if len(resp.Matches) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(resp.Matches))
		}
		if resp.Matches[0].RoomCode != "ROOM04" {
			t.Errorf("expected newest first, got %s", resp.Matches[0].RoomCode)
		}
	})

	t.Run("clamps oversized limit", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/matches/recent?limit=100000", f.token(t, "alice"), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestWebSocketAuth(t *testing.T) {
	f := newAPIFixture(t)
	server := httptest.NewServer(f.server)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	t.Run("rejects missing token", func(t *testing.T) {
		_, resp, err := gws.DefaultDialer.Dial(wsURL, nil)
		if err == nil {
			t.Fatal("expected dial to fail without a token")
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401 refusal, got %+v", resp)
		}
	})

	t.Run("accepts valid token", func(t *testing.T) {
		conn, _, err := gws.DefaultDialer.Dial(wsURL+"?token="+f.token(t, "alice"), nil)
		if err != nil {
			t.Fatalf("dial failed: %v", err)
		}
		conn.Close()
	})
}
