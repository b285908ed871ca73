package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ctchen222/tictactoe-history/internal/game"
	"ctchen222/tictactoe-history/pkg/proto"
)

var ErrBadToken = errors.New("unrecognised command")

// ParseCommand turns one script token into a session command.
//
//	4        move on cell 4
//	1,2      move on row 1, column 2
//	jump:3   view step 3
//	reset    start over
func ParseCommand(token string) (proto.Command, error) {
	token = strings.ToLower(strings.TrimSpace(token))

	switch {
	case token == proto.CommandReset:
		return proto.Reset(), nil

	case strings.HasPrefix(token, proto.CommandJump+":"):
		step, err := strconv.Atoi(strings.TrimPrefix(token, proto.CommandJump+":"))
		if err != nil {
			return proto.Command{}, fmt.Errorf("%w: %q", ErrBadToken, token)
		}
		return proto.Jump(step), nil

	case strings.Contains(token, ","):
		parts := strings.SplitN(token, ",", 2)
		row, rowErr := strconv.Atoi(strings.TrimSpace(parts[0]))
		col, colErr := strconv.Atoi(strings.TrimSpace(parts[1]))
		if rowErr != nil || colErr != nil {
			return proto.Command{}, fmt.Errorf("%w: %q", ErrBadToken, token)
		}
		cell, err := game.Index(row, col)
		if err != nil {
			return proto.Command{}, err
		}
		return proto.Move(cell), nil
	}

	cell, err := strconv.Atoi(strings.TrimPrefix(token, proto.CommandMove+":"))
	if err != nil {
		return proto.Command{}, fmt.Errorf("%w: %q", ErrBadToken, token)
	}
	return proto.Move(cell), nil
}

// ParseScript parses every token, stopping at the first bad one.
func ParseScript(tokens []string) ([]proto.Command, error) {
	cmds := make([]proto.Command, 0, len(tokens))
	for i, token := range tokens {
		cmd, err := ParseCommand(token)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i+1, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
