package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/magic"
)

func init() {
	magic.Init()
	board.InitZobristKeys()
}

func newTestEngine() (*Engine, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewEngine(&buf), &buf
}

func TestHandleUCIPrintsIDAndOptionsThenUciok(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("uci")

	out := buf.String()
	if !strings.Contains(out, "id name") {
		t.Fatalf("expected an id name line, got:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "uciok") {
		t.Fatalf("expected uci to end with uciok, got:\n%s", out)
	}
}

func TestHandleIsReadyRepliesReadyOK(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("isready")
	if strings.TrimSpace(buf.String()) != "readyok" {
		t.Fatalf("expected readyok, got %q", buf.String())
	}
}

func TestHandleQuitReportsQuit(t *testing.T) {
	eng, _ := newTestEngine()
	if quit := eng.HandleLine("quit"); !quit {
		t.Fatalf("expected quit to report true")
	}
	if quit := eng.HandleLine("uci"); quit {
		t.Fatalf("expected a non-quit command to report false")
	}
}

func TestHandleGoProducesABestMove(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("position startpos")
	eng.HandleLine("go depth 2")
	eng.stopAndWait()

	if !strings.Contains(buf.String(), "bestmove") {
		t.Fatalf("expected a bestmove line, got:\n%s", buf.String())
	}
}

func TestHandlePositionFenThenMoves(t *testing.T) {
	eng, _ := newTestEngine()
	eng.HandleLine("position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 moves e2e4")
	if got := eng.board.Current().EnPassant; got == board.Illegal {
		t.Fatalf("expected e2e4 to set an en-passant target")
	}
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("position startpos moves e2e5")
	if !strings.Contains(buf.String(), "error") {
		t.Fatalf("expected an error line for an illegal move, got:\n%s", buf.String())
	}
}

func TestSetOptionHashResizesCache(t *testing.T) {
	eng, _ := newTestEngine()
	eng.HandleLine("setoption name Hash value 2")
	if eng.hashMB != 2 {
		t.Fatalf("expected hashMB = 2, got %d", eng.hashMB)
	}
}

func TestSetOptionUCIEloClampsToDocumentedRange(t *testing.T) {
	eng, _ := newTestEngine()
	eng.HandleLine("setoption name UCI_Elo value 100")
	if eng.elo != minElo {
		t.Fatalf("expected elo clamped to %d, got %d", minElo, eng.elo)
	}
	eng.HandleLine("setoption name UCI_Elo value 99999")
	if eng.elo != maxElo {
		t.Fatalf("expected elo clamped to %d, got %d", maxElo, eng.elo)
	}
}

func TestStopDuringAnInfiniteSearchReturnsPromptly(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("position startpos")
	eng.HandleLine("go infinite")
	eng.HandleLine("stop")

	if !strings.Contains(buf.String(), "bestmove") {
		t.Fatalf("expected stop to flush a bestmove line, got:\n%s", buf.String())
	}
}

func TestCountMovesReportsPerftNodes(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("countmoves 2")
	if !strings.Contains(buf.String(), "nodes 400") {
		t.Fatalf("expected perft(2) = 400 from the starting position, got:\n%s", buf.String())
	}
}

func TestListMovesReportsTwentyFromStartingPosition(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("listmoves")
	if !strings.Contains(buf.String(), "20 legal moves") {
		t.Fatalf("expected 20 legal moves from the starting position, got:\n%s", buf.String())
	}
}

func TestUnknownCommandReportsAnError(t *testing.T) {
	eng, buf := newTestEngine()
	eng.HandleLine("notacommand")
	if !strings.Contains(buf.String(), "error") {
		t.Fatalf("expected an error line, got:\n%s", buf.String())
	}
}
