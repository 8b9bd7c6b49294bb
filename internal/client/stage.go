package client

import (
	"errors"
	"fmt"
)

// Stage is where the signing flow currently is.
type Stage string

const (
	StageUpload     Stage = "upload"
	StageProcessing Stage = "processing"
	StageViewing    Stage = "viewing"
)

type Event string

const (
	EventSelect  Event = "select"
	EventBack    Event = "back"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
)

var ErrIllegalTransition = errors.New("illegal stage transition")

var transitions = map[Stage]map[Event]Stage{
	StageUpload: {
		EventSelect: StageProcessing,
		EventBack:   StageUpload,
	},
	StageProcessing: {
		EventSucceed: StageViewing,
		EventFail:    StageUpload,
	},
	StageViewing: {
		EventBack: StageUpload,
	},
}

// Transition returns the stage reached from `from` on ev.
func Transition(from Stage, ev Event) (Stage, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, from, ev)
	}
	return to, nil
}

// AllowedEvents lists the events accepted in a stage.
func AllowedEvents(from Stage) []Event {
	events := make([]Event, 0, len(transitions[from]))
	for _, ev := range []Event{EventSelect, EventBack, EventSucceed, EventFail} {
		if _, ok := transitions[from][ev]; ok {
			events = append(events, ev)
		}
	}
	return events
}
