package cli

import (
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/grantcarthew/wdctl/internal/webdriver"
)

var keyCmd = &cobra.Command{
	Use:   "key <key>",
	Short: "Send a keyboard key",
	Long: `Sends a keyboard key to the focused element through the actions API.

Supported special keys:
  Navigation:    Enter, Return, Tab, Escape, Space
  Editing:       Backspace, Delete, Insert
  Arrows:        ArrowUp, ArrowDown, ArrowLeft, ArrowRight
  Page:          Home, End, PageUp, PageDown

Single characters (a-z, A-Z, 0-9, punctuation) can be used directly.

Modifier flags (can be combined):
  --ctrl   Hold Control
  --meta   Hold Meta/Command
  --alt    Hold Alt/Option
  --shift  Hold Shift

Held keys are released after the key is sent.

Examples:
  key Enter                    # Submit form / confirm
  key Tab                      # Move to next field
  key a --ctrl                 # Select all (Linux, Windows)
  key a --meta                 # Select all (macOS)
  key c --ctrl                 # Copy
  key v --ctrl                 # Paste
  key z --ctrl --shift         # Redo
  key ArrowDown --shift        # Extend selection down`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func init() {
	keyCmd.Flags().Bool("ctrl", false, "Hold Control")
	keyCmd.Flags().Bool("alt", false, "Hold Alt")
	keyCmd.Flags().Bool("shift", false, "Hold Shift")
	keyCmd.Flags().Bool("meta", false, "Hold Meta/Command")
	rootCmd.AddCommand(keyCmd)
}

// keyValue resolves a key name or a single character to the value sent in
// key actions.
func keyValue(name string) (string, bool) {
	if code, ok := webdriver.Keys[name]; ok {
		return code, true
	}
	if utf8.RuneCountInString(name) == 1 {
		return name, true
	}
	return "", false
}

func runKey(cmd *cobra.Command, args []string) error {
	key, ok := keyValue(args[0])
	if !ok {
		return outputError("unknown key: " + args[0])
	}

	var modifiers []string
	for _, m := range []string{"ctrl", "alt", "shift", "meta"} {
		if on, _ := cmd.Flags().GetBool(m); on {
			modifiers = append(modifiers, webdriver.Keys[modifierKeys[m]])
		}
	}
	debugf("key=%q modifiers=%d", args[0], len(modifiers))

	s, err := currentSession()
	if err != nil {
		return outputErr(err)
	}
	ctx := commandContext(cmd)

	var actions webdriver.Actions
	actions.Keyboard().Chord(key, modifiers...)
	if err := s.PerformActions(ctx, &actions); err != nil {
		return outputErr(err)
	}
	if err := s.ReleaseActions(ctx); err != nil {
		return outputErr(err)
	}
	return outputSuccess(nil)
}

var modifierKeys = map[string]string{
	"ctrl":  "Control",
	"alt":   "Alt",
	"shift": "Shift",
	"meta":  "Meta",
}
