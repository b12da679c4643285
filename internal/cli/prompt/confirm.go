package prompt

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirm prompts the user for yes/no confirmation.
// A plain "n" or empty answer returns false; Ctrl+C returns ErrAborted.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	return false, wrapError(err)
}

// ConfirmWithForce returns true immediately if force is true,
// otherwise prompts for confirmation.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}
