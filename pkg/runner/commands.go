package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/schema"
)

// ErrUnknownCommand is returned for lines that are not a known command.
var ErrUnknownCommand = errors.New("unknown command")

// Help is the command summary printed by "help".
const Help = "commands: add, name <text>, save, cancel, delete <n>, confirm, list, help, quit"

// Command is a parsed input line.
type Command struct {
	Actions []domain.Action
	Show    bool // re-render without dispatching
	Help    bool
	Quit    bool
}

// ParseCommand translates one input line against the state the user is looking at.
// Index-based commands resolve to ids here, so a later list change cannot
// redirect them to a different contact.
func ParseCommand(line string, state *domain.State) (Command, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		action, err := schema.DecodeJSON([]byte(line))
		if err != nil {
			return Command{}, err
		}
		return Command{Actions: []domain.Action{action}}, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
		return Command{}, nil
	case "add":
		return actions(domain.AddButtonTapped{}), nil
	case "name":
		return actions(domain.AddContactAction{Action: domain.EditorSetName{Name: rest}}), nil
	case "save":
		return actions(domain.AddContactAction{Action: domain.EditorSaveTapped{}}), nil
	case "cancel":
		if _, editing := state.Editor(); editing {
			return actions(domain.AddContactAction{Action: domain.EditorCancelTapped{}}), nil
		}
		return actions(domain.Dismiss{}), nil
	case "dismiss":
		return actions(domain.Dismiss{}), nil
	case "delete", "rm":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Command{}, fmt.Errorf("usage: delete <n>")
		}
		c, ok := state.Contacts.At(n - 1)
		if !ok {
			return Command{}, fmt.Errorf("no contact #%d", n)
		}
		return actions(domain.DeleteButtonTapped{ID: c.ID}), nil
	case "confirm", "yes":
		// With no prompt presented this is a stale confirmation and will be ignored.
		var target domain.ID
		if d, ok := state.Alert(); ok {
			target, _ = d.TargetID()
		}
		return actions(domain.ConfirmDeletionOf(target)), nil
	case "list", "ls":
		return Command{Show: true}, nil
	case "help", "?":
		return Command{Help: true}, nil
	case "quit", "exit", "q":
		return Command{Quit: true}, nil
	}
	return Command{}, fmt.Errorf("%w %q (type help)", ErrUnknownCommand, verb)
}

func actions(a ...domain.Action) Command {
	return Command{Actions: a}
}
