package voice

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandSpeaker speaks through an external text-to-speech program such as
// espeak or say. The text is passed as the final argument.
type CommandSpeaker struct {
	Name string
	Args []string
}

// ParseCommandSpeaker builds a CommandSpeaker from a command line such as
// "espeak -s 150". It returns nil for a blank command.
func ParseCommandSpeaker(command string) *CommandSpeaker {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &CommandSpeaker{Name: fields[0], Args: fields[1:]}
}

// Speak implements Speaker.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string(nil), s.Args...), text)
	cmd := exec.CommandContext(ctx, s.Name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speak with %s: %w: %s", s.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
