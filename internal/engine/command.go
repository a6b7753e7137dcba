package engine

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Command is a discrete player request.
type Command uint8

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandHardDrop
	CommandRotateCW
	CommandRotateCCW
)

func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "left"
	case CommandMoveRight:
		return "right"
	case CommandSoftDrop:
		return "down"
	case CommandHardDrop:
		return "drop"
	case CommandRotateCW:
		return "cw"
	case CommandRotateCCW:
		return "ccw"
	default:
		return "none"
	}
}

// ParseCommand resolves a script token such as "left" or "cw".
func ParseCommand(s string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return CommandMoveLeft, true
	case "right", "r":
		return CommandMoveRight, true
	case "down", "soft", "d":
		return CommandSoftDrop, true
	case "drop", "hard", "space":
		return CommandHardDrop, true
	case "cw", "rotate":
		return CommandRotateCW, true
	case "ccw":
		return CommandRotateCCW, true
	}
	return CommandNone, false
}

// CommandForAction maps a gameplay input action to its command.
// Non-gameplay actions map to CommandNone.
func CommandForAction(a core.Action) Command {
	switch a {
	case core.ActionLeft:
		return CommandMoveLeft
	case core.ActionRight:
		return CommandMoveRight
	case core.ActionSoftDrop:
		return CommandSoftDrop
	case core.ActionHardDrop:
		return CommandHardDrop
	case core.ActionRotateCW:
		return CommandRotateCW
	case core.ActionRotateCCW:
		return CommandRotateCCW
	}
	return CommandNone
}

// candidate returns the piece a single-step command would produce.
// Hard drop is handled separately by HardDropTarget.
func candidate(p Piece, cmd Command) Piece {
	switch cmd {
	case CommandMoveLeft:
		return p.Moved(Left)
	case CommandMoveRight:
		return p.Moved(Right)
	case CommandSoftDrop:
		return p.Moved(Down)
	case CommandRotateCW:
		return p.RotatedCW()
	case CommandRotateCCW:
		return p.RotatedCCW()
	}
	return p
}

// Step applies a single-step command to p against b. The second result
// reports whether the candidate was legal; on false p is returned unchanged.
func Step(b *Board, p Piece, cmd Command) (Piece, bool) {
	next := candidate(p, cmd)
	if next == p || !b.Fits(next) {
		return p, false
	}
	return next, true
}

// HardDropTarget returns the lowest legal position straight below p and
// the number of rows moved. It takes at most b.Rows() steps.
func HardDropTarget(b *Board, p Piece) (Piece, int) {
	steps := 0
	for steps < b.Rows() {
		next := p.Moved(Down)
		if !b.Fits(next) {
			break
		}
		p = next
		steps++
	}
	return p, steps
}
