// Package handler provides flag parsing utilities shared by the subcommands.
package handler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/app"
	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/models"
)

// EnvBoard names the board used when --board is not given.
const EnvBoard = "EMBUDO_BOARD"

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseID extracts a positive ID from a flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	id, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", flagName)
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParsePriority extracts a priority name or ID. Unset means default.
func (p *FlagParser) ParsePriority(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return cli.ParsePriority(value)
}

// ParseMoney extracts a dollar amount in cents.
func (p *FlagParser) ParseMoney(flagName string) (int64, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return cli.ParseMoney(value)
}

// BoardRef returns the --board flag, falling back to EMBUDO_BOARD.
func (p *FlagParser) BoardRef() (string, error) {
	ref, err := p.cmd.Flags().GetString("board")
	if err != nil {
		return "", fmt.Errorf("failed to parse board flag: %w", err)
	}
	if ref = strings.TrimSpace(ref); ref != "" {
		return ref, nil
	}
	if ref = strings.TrimSpace(os.Getenv(EnvBoard)); ref != "" {
		return ref, nil
	}
	return "", fmt.Errorf("no board specified: use --board or set %s", EnvBoard)
}

// ParseBoard resolves the --board flag to a board.
func (p *FlagParser) ParseBoard(ctx context.Context, a *app.App) (*models.Board, error) {
	ref, err := p.BoardRef()
	if err != nil {
		return nil, err
	}
	return cli.ResolveBoard(ctx, a, ref)
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
