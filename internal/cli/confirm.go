package cli

import (
	"errors"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/embudo/internal/cli/styles"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// Confirm asks a yes/no question on the command's streams. It defaults to
// no.
func Confirm(cmd *cobra.Command, title, description, affirmative string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&confirmed),
		),
	).
		WithTheme(styles.FormTheme()).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.OutOrStdout())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// ShouldConfirm reports whether a destructive command must prompt: not when
// forced, and never in the machine-readable modes.
func ShouldConfirm(cmd *cobra.Command) bool {
	force, _ := cmd.Flags().GetBool("force")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return !force && !jsonOutput && !quietMode
}
