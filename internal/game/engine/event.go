package engine

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/winterfair/fairbot/internal/errors"
)

// Callback prefixes of the task event vocabulary. Payload fields are
// colon-separated after the prefix.
const (
	PrefixStart    = "task_start"         // task_start:<pavilion>:<task>
	PrefixHit      = "task_reaction_hit"  // task_reaction_hit:<task>
	PrefixWait     = "task_reaction_wait" // task_reaction_wait:<task>
	PrefixChoice   = "task_choice"        // task_choice:<task>:<value>
	PrefixSequence = "task_sequence"      // task_sequence:<task>:<step>:<value>
	PrefixCancel   = "task_cancel"        // task_cancel:<task>

	// PrefixFact and PrefixPavilionEnter are navigation targets the engine
	// places on its result screens; the bot router owns their handlers.
	PrefixFact          = "fact"      // fact:<pavilion>:<task>
	PrefixPavilionEnter = "pav_enter" // pav_enter:<pavilion>
	PrefixMap           = "map"
)

// DoneValue is the explicit finish token of multi-pick and repeat tasks.
const DoneValue = "done"

// Kind discriminates parsed task events.
type Kind string

const (
	KindStart    Kind = "start"
	KindHit      Kind = "hit"
	KindWait     Kind = "wait"
	KindChoice   Kind = "choice"
	KindSequence Kind = "sequence"
	KindCancel   Kind = "cancel"
)

// Event is one parsed task callback. Fields beyond Kind, UserID and
// TaskID are populated per kind.
type Event struct {
	Kind       Kind
	UserID     int64
	PavilionID int64
	TaskID     int64
	Step       int
	Value      string
}

// ParseEvent decodes callback data into a task event. Malformed payloads
// yield an invalid-event error and never reach session state.
func ParseEvent(userID int64, data string) (*Event, error) {
	parts := strings.Split(data, ":")
	prefix := parts[0]
	args := parts[1:]

	switch prefix {
	case PrefixStart:
		if len(args) != 2 {
			return nil, apperrors.NewInvalidEventError("start payload wants 2 fields, got " + strconv.Itoa(len(args)))
		}
		pavilionID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		taskID, err := parseID(args[1])
		if err != nil {
			return nil, err
		}
		return &Event{Kind: KindStart, UserID: userID, PavilionID: pavilionID, TaskID: taskID}, nil

	case PrefixHit:
		if len(args) != 1 {
			return nil, apperrors.NewInvalidEventError("hit payload wants 1 field, got " + strconv.Itoa(len(args)))
		}
		taskID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return &Event{Kind: KindHit, UserID: userID, TaskID: taskID}, nil

	case PrefixWait:
		if len(args) != 1 {
			return nil, apperrors.NewInvalidEventError("wait payload wants 1 field, got " + strconv.Itoa(len(args)))
		}
		taskID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return &Event{Kind: KindWait, UserID: userID, TaskID: taskID}, nil

	case PrefixChoice:
		if len(args) != 2 {
			return nil, apperrors.NewInvalidEventError("choice payload wants 2 fields, got " + strconv.Itoa(len(args)))
		}
		taskID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		if args[1] == "" {
			return nil, apperrors.NewInvalidEventError("empty choice value")
		}
		return &Event{Kind: KindChoice, UserID: userID, TaskID: taskID, Value: args[1]}, nil

	case PrefixSequence:
		if len(args) != 3 {
			return nil, apperrors.NewInvalidEventError("sequence payload wants 3 fields, got " + strconv.Itoa(len(args)))
		}
		taskID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		step, err := strconv.Atoi(args[1])
		if err != nil || step < 0 {
			return nil, apperrors.NewInvalidEventError("bad sequence step " + args[1])
		}
		if args[2] == "" {
			return nil, apperrors.NewInvalidEventError("empty sequence value")
		}
		return &Event{Kind: KindSequence, UserID: userID, TaskID: taskID, Step: step, Value: args[2]}, nil

	case PrefixCancel:
		if len(args) != 1 {
			return nil, apperrors.NewInvalidEventError("cancel payload wants 1 field, got " + strconv.Itoa(len(args)))
		}
		taskID, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return &Event{Kind: KindCancel, UserID: userID, TaskID: taskID}, nil
	}

	return nil, apperrors.NewInvalidEventError("unknown prefix " + prefix)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidEventError("bad id " + raw)
	}
	return id, nil
}

// StartData builds task_start callback data.
func StartData(pavilionID, taskID int64) string {
	return fmt.Sprintf("%s:%d:%d", PrefixStart, pavilionID, taskID)
}

// HitData builds task_reaction_hit callback data.
func HitData(taskID int64) string {
	return fmt.Sprintf("%s:%d", PrefixHit, taskID)
}

// WaitData builds task_reaction_wait callback data.
func WaitData(taskID int64) string {
	return fmt.Sprintf("%s:%d", PrefixWait, taskID)
}

// ChoiceData builds task_choice callback data.
func ChoiceData(taskID int64, value string) string {
	return fmt.Sprintf("%s:%d:%s", PrefixChoice, taskID, value)
}

// SequenceData builds task_sequence callback data.
func SequenceData(taskID int64, step int, value string) string {
	return fmt.Sprintf("%s:%d:%d:%s", PrefixSequence, taskID, step, value)
}

// CancelData builds task_cancel callback data.
func CancelData(taskID int64) string {
	return fmt.Sprintf("%s:%d", PrefixCancel, taskID)
}

// FactData builds the fact unlock callback placed on success screens.
func FactData(pavilionID, taskID int64) string {
	return fmt.Sprintf("%s:%d:%d", PrefixFact, pavilionID, taskID)
}

// PavilionEnterData builds the back-to-pavilion navigation callback.
func PavilionEnterData(pavilionID int64) string {
	return fmt.Sprintf("%s:%d", PrefixPavilionEnter, pavilionID)
}
