package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from Stage
		ev   Event
		to   Stage
		ok   bool
	}{
		{StageUpload, EventSelect, StageProcessing, true},
		{StageUpload, EventBack, StageUpload, true},
		{StageUpload, EventSucceed, StageUpload, false},
		{StageUpload, EventFail, StageUpload, false},
		{StageProcessing, EventSucceed, StageViewing, true},
		{StageProcessing, EventFail, StageUpload, true},
		{StageProcessing, EventSelect, StageProcessing, false},
		{StageProcessing, EventBack, StageProcessing, false},
		{StageViewing, EventBack, StageUpload, true},
		{StageViewing, EventSelect, StageViewing, false},
		{StageViewing, EventSucceed, StageViewing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.ev), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrIllegalTransition)
			}
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestAllowedEvents(t *testing.T) {
	assert.Equal(t, []Event{EventSelect, EventBack}, AllowedEvents(StageUpload))
	assert.Equal(t, []Event{EventSucceed, EventFail}, AllowedEvents(StageProcessing))
	assert.Equal(t, []Event{EventBack}, AllowedEvents(StageViewing))
	assert.Empty(t, AllowedEvents(Stage("unknown")))
}
