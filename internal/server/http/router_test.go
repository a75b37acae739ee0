package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chess3d/internal/chess3d"
	"chess3d/internal/server/game"
)

// black to move and checkmated
const matedFEN = "k7/8/8/1R6|8/8/8/8|8/8/8/8|RR6/R7/8/7K b -"

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	return New(cfg, game.NewManager())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

func newGame(t *testing.T, s *Server, fen string) NewGameResponse {
	t.Helper()
	code, body := doJSON(t, s, http.MethodPost, "/api/games", NewGameRequest{Position: fen})
	if code != http.StatusCreated {
		t.Fatalf("new game: %d %s", code, body)
	}
	return decode[NewGameResponse](t, body)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	code, body := doJSON(t, s, http.MethodGet, "/health", nil)
	if code != http.StatusOK || !strings.Contains(string(body), `"ok"`) {
		t.Fatalf("health: %d %s", code, body)
	}
}

func TestNewGameAndGet(t *testing.T) {
	s := newTestServer(t, Config{})
	g := newGame(t, s, "")
	if g.OwnerToken == "" || g.GameID == "" {
		t.Fatalf("missing identifiers: %+v", g)
	}
	if g.ToMove != chess3d.White || len(g.LegalMoves) == 0 {
		t.Fatalf("fresh game: to_move=%v moves=%d", g.ToMove, len(g.LegalMoves))
	}

	code, body := doJSON(t, s, http.MethodGet, "/api/games/"+g.GameID, nil)
	if code != http.StatusOK {
		t.Fatalf("get: %d %s", code, body)
	}
	got := decode[GameResponse](t, body)
	if got.Position != g.Position {
		t.Fatalf("position mismatch: %q vs %q", got.Position, g.Position)
	}
	if strings.Contains(string(body), "owner_token") {
		t.Fatalf("token leaked by GET: %s", body)
	}

	if code, _ := doJSON(t, s, http.MethodGet, "/api/games/missing", nil); code != http.StatusNotFound {
		t.Fatalf("missing game: got %d", code)
	}
	if code, _ := doJSON(t, s, http.MethodPost, "/api/games", NewGameRequest{Position: "garbage"}); code != http.StatusBadRequest {
		t.Fatalf("bad position: got %d", code)
	}
}

func TestPlayMove(t *testing.T) {
	s := newTestServer(t, Config{})
	g := newGame(t, s, "")
	mv := g.LegalMoves[0]
	path := "/api/games/" + g.GameID + "/moves"

	cases := []struct {
		name string
		req  PlayRequest
		want int
	}{
		{"wrong token", PlayRequest{From: mv.From, To: mv.To, OwnerToken: "nope"}, http.StatusForbidden},
		{"bad square", PlayRequest{From: "9z9", To: mv.To, OwnerToken: g.OwnerToken}, http.StatusBadRequest},
		{"illegal", PlayRequest{From: mv.From, To: mv.From, OwnerToken: g.OwnerToken}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, body := doJSON(t, s, http.MethodPost, path, tc.req); code != tc.want {
				t.Fatalf("got %d want %d: %s", code, tc.want, body)
			}
		})
	}

	code, body := doJSON(t, s, http.MethodPost, path, PlayRequest{From: mv.From, To: mv.To, OwnerToken: g.OwnerToken})
	if code != http.StatusOK {
		t.Fatalf("play: %d %s", code, body)
	}
	got := decode[GameResponse](t, body)
	if got.ToMove != chess3d.Black || len(got.History) != 1 {
		t.Fatalf("after play: to_move=%v history=%v", got.ToMove, got.History)
	}

	if code, _ := doJSON(t, s, http.MethodPost, "/api/games/missing/moves", PlayRequest{From: mv.From, To: mv.To}); code != http.StatusNotFound {
		t.Fatalf("missing game: got %d", code)
	}
}

func TestAiPlaysForOwner(t *testing.T) {
	s := newTestServer(t, Config{})
	g := newGame(t, s, "")
	path := "/api/games/" + g.GameID + "/ai"

	req := AiRequest{SearchRequest: SearchRequest{MaxDepth: 1, TimeMs: 5000}, Play: true}
	if code, _ := doJSON(t, s, http.MethodPost, path, req); code != http.StatusForbidden {
		t.Fatalf("play without token: got %d", code)
	}

	req.OwnerToken = g.OwnerToken
	code, body := doJSON(t, s, http.MethodPost, path, req)
	if code != http.StatusOK {
		t.Fatalf("ai: %d %s", code, body)
	}
	resp := decode[AiResponse](t, body)
	if resp.Search.BestMove == nil || resp.Search.Depth != 1 {
		t.Fatalf("search result: %+v", resp.Search)
	}
	if len(resp.Game.History) != 1 || resp.Game.ToMove != chess3d.Black {
		t.Fatalf("ai move not applied: %+v", resp.Game.History)
	}
	if resp.Mate != nil {
		t.Fatalf("mate probe ran without mate_plies")
	}

	// suggestion only
	code, body = doJSON(t, s, http.MethodPost, path, AiRequest{SearchRequest: SearchRequest{MaxDepth: 1, TimeMs: 5000}})
	if code != http.StatusOK {
		t.Fatalf("suggest: %d %s", code, body)
	}
	if resp = decode[AiResponse](t, body); len(resp.Game.History) != 1 {
		t.Fatalf("suggestion must not play, history=%v", resp.Game.History)
	}
}

func TestAiOnFinishedGameConflicts(t *testing.T) {
	s := newTestServer(t, Config{})
	g := newGame(t, s, matedFEN)
	if g.Status.State != chess3d.StateCheckmate || len(g.LegalMoves) != 0 {
		t.Fatalf("fixture status %+v", g.Status)
	}
	req := AiRequest{SearchRequest: SearchRequest{MaxDepth: 1}, Play: true, OwnerToken: g.OwnerToken}
	if code, body := doJSON(t, s, http.MethodPost, "/api/games/"+g.GameID+"/ai", req); code != http.StatusConflict {
		t.Fatalf("ai on finished game: %d %s", code, body)
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, Config{})

	code, body := doJSON(t, s, http.MethodPost, "/api/analyze", AnalyzeRequest{})
	if code != http.StatusOK {
		t.Fatalf("analyze: %d %s", code, body)
	}
	resp := decode[AnalyzeResponse](t, body)
	want := len(chess3d.NewInitialPosition().GenerateLegalMoves())
	if len(resp.LegalMoves) != want || resp.Search != nil {
		t.Fatalf("analyze initial: moves=%d want %d search=%v", len(resp.LegalMoves), want, resp.Search)
	}

	code, body = doJSON(t, s, http.MethodPost, "/api/analyze", AnalyzeRequest{
		SearchRequest: SearchRequest{MaxDepth: 1, TimeMs: 5000},
		Search:        true,
	})
	if code != http.StatusOK {
		t.Fatalf("analyze with search: %d %s", code, body)
	}
	if resp = decode[AnalyzeResponse](t, body); resp.Search == nil || resp.Search.BestMove == nil {
		t.Fatalf("expected a search result: %s", body)
	}

	code, body = doJSON(t, s, http.MethodPost, "/api/analyze", AnalyzeRequest{Position: matedFEN, Search: true})
	if code != http.StatusOK {
		t.Fatalf("analyze mated: %d %s", code, body)
	}
	resp = decode[AnalyzeResponse](t, body)
	if resp.Status.State != chess3d.StateCheckmate || resp.Search != nil || len(resp.LegalMoves) != 0 {
		t.Fatalf("mated analysis: %s", body)
	}

	if code, _ := doJSON(t, s, http.MethodPost, "/api/analyze", AnalyzeRequest{Position: "1|2"}); code != http.StatusBadRequest {
		t.Fatalf("bad position: got %d", code)
	}
}

func TestSearchConfigClamps(t *testing.T) {
	s := newTestServer(t, Config{DefaultDepth: 2})
	cfg := s.searchConfig(SearchRequest{})
	if cfg.MaxDepth != 2 || cfg.TimeLimit <= 0 || cfg.Quiescence {
		t.Fatalf("defaults: %+v", cfg)
	}
	on := true
	cfg = s.searchConfig(SearchRequest{MaxDepth: 99, TimeMs: 1 << 40, Quiescence: &on})
	if cfg.MaxDepth != maxSearchDepth || cfg.TimeLimit != maxSearchTime || !cfg.Quiescence {
		t.Fatalf("clamped: %+v", cfg)
	}
}

func TestStaticViewRedirects(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>board</html>"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	s := newTestServer(t, Config{WebDir: dir})

	get := func(path, ua, cookie string) *http.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if ua != "" {
			req.Header.Set("User-Agent", ua)
		}
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
		resp, err := s.App().Test(req, -1)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		return resp
	}

	cases := []struct {
		name, path, ua, cookie, want string
	}{
		{"desktop", "/", "Mozilla/5.0 (X11; Linux x86_64)", "", "/web/"},
		{"phone", "/", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", "", "/web_mobile/"},
		{"cookie wins over ua", "/", "Android", viewCookieName + "=web", "/web/"},
		{"query wins over cookie", "/?view=m", "", viewCookieName + "=web", "/web_mobile/"},
		{"bare web", "/web", "", "", "/web/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(tc.path, tc.ua, tc.cookie)
			if resp.StatusCode != http.StatusFound {
				t.Fatalf("status %d", resp.StatusCode)
			}
			if loc := resp.Header.Get("Location"); loc != tc.want {
				t.Fatalf("location %q want %q", loc, tc.want)
			}
		})
	}

	resp := get("/?view=desktop", "iPhone", "")
	if !strings.Contains(resp.Header.Get("Set-Cookie"), viewCookieName+"=web") {
		t.Fatalf("view override not remembered: %q", resp.Header.Get("Set-Cookie"))
	}

	if resp := get("/web/index.html", "", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("asset: status %d", resp.StatusCode)
	}
}

func TestSocketRouteRequiresUpgrade(t *testing.T) {
	s := newTestServer(t, Config{})
	g := newGame(t, s, "")
	code, _ := doJSON(t, s, http.MethodGet, "/ws/games/"+g.GameID, nil)
	if code != http.StatusUpgradeRequired {
		t.Fatalf("plain GET on socket route: got %d", code)
	}
}
