package uci

import (
	"strings"

	"github.com/fatih/color"

	"github.com/ekmadsen/madchess/board"
	"github.com/ekmadsen/madchess/move"
)

// pieceGlyphs indexes by move.Piece (None..BlackKing) into the Unicode
// chess glyphs, adapted from the teacher's enum-indexed pieceSymbols
// table onto this project's move.Piece ordering.
var pieceGlyphs = [...]rune{
	move.None:        '.',
	move.WhitePawn:   '♙',
	move.WhiteKnight: '♘',
	move.WhiteBishop: '♗',
	move.WhiteRook:   '♖',
	move.WhiteQueen:  '♕',
	move.WhiteKing:   '♔',
	move.BlackPawn:   '♟',
	move.BlackKnight: '♞',
	move.BlackBishop: '♝',
	move.BlackRook:   '♜',
	move.BlackQueen:  '♛',
	move.BlackKing:   '♚',
}

// handleShowBoard prints the current position as an 8x8 diagram, piece
// glyphs colorized by side when standard output is a terminal.
func (e *Engine) handleShowBoard() {
	e.stopAndWait()
	e.out.printf("%s", renderPosition(e.board.Current()))
}

func renderPosition(pos *board.Position) string {
	white := color.New(color.FgWhite, color.Bold)
	black := color.New(color.FgCyan, color.Bold)
	colorize := !color.NoColor

	var b strings.Builder
	for row := 0; row < 8; row++ {
		b.WriteByte(byte('8' - row))
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := board.Square(row*8 + file)
			piece := pos.PieceAt(sq)
			glyph := string(pieceGlyphs[piece])
			switch {
			case !colorize || piece == move.None:
				b.WriteString(glyph)
			case piece.Color() == move.White:
				b.WriteString(white.Sprint(glyph))
			default:
				b.WriteString(black.Sprint(glyph))
			}
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	b.WriteString("Active color: ")
	if pos.ColorToMove == move.White {
		b.WriteString("white")
	} else {
		b.WriteString("black")
	}

	b.WriteString("\nEn passant: ")
	b.WriteString(board.Square2String(pos.EnPassant))

	b.WriteString("\nCastling rights: ")
	rights := ""
	if pos.Castling&board.CastlingWhiteShort != 0 {
		rights += "K"
	}
	if pos.Castling&board.CastlingWhiteLong != 0 {
		rights += "Q"
	}
	if pos.Castling&board.CastlingBlackShort != 0 {
		rights += "k"
	}
	if pos.Castling&board.CastlingBlackLong != 0 {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	b.WriteString(rights)
	b.WriteByte('\n')

	b.WriteString("FEN: ")
	b.WriteString(board.SerializeFEN(pos))
	b.WriteByte('\n')

	return b.String()
}
