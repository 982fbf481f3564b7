package telegram

import (
	"testing"

	"github.com/google/uuid"
)

func TestCallbackRoundTrip(t *testing.T) {
	setID := uuid.New()

	tests := []struct {
		name   string
		data   string
		action string
		check  func(t *testing.T, cd callbackData)
	}{
		{
			name:   "option",
			data:   buildOptionCallback(3, 1),
			action: actionOption,
			check: func(t *testing.T, cd callbackData) {
				q, ok1 := cd.intParam(0)
				o, ok2 := cd.intParam(1)
				if !ok1 || !ok2 || q != 3 || o != 1 {
					t.Fatalf("unexpected params: %v", cd.Params)
				}
			},
		},
		{
			name:   "submit",
			data:   buildSubmitCallback(0),
			action: actionSubmit,
			check: func(t *testing.T, cd callbackData) {
				if q, ok := cd.intParam(0); !ok || q != 0 {
					t.Fatalf("unexpected params: %v", cd.Params)
				}
			},
		},
		{
			name:   "play",
			data:   buildPlayCallback(setID),
			action: actionPlay,
			check: func(t *testing.T, cd callbackData) {
				if id, ok := cd.setIDParam(); !ok || id != setID {
					t.Fatalf("unexpected set id: %v", cd.Params)
				}
			},
		},
		{
			name:   "sets",
			data:   buildSetsCallback(),
			action: actionSets,
			check: func(t *testing.T, cd callbackData) {
				if len(cd.Params) != 0 {
					t.Fatalf("unexpected params: %v", cd.Params)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.data) > 64 {
				t.Fatalf("callback data exceeds telegram limit: %d bytes", len(tt.data))
			}
			cd := decodeCallback(tt.data)
			if cd.Action != tt.action {
				t.Fatalf("expected action %q, got %q", tt.action, cd.Action)
			}
			tt.check(t, cd)
		})
	}
}

func TestCallbackInvalidParams(t *testing.T) {
	cd := decodeCallback("opt:x:-1")
	if _, ok := cd.intParam(0); ok {
		t.Fatalf("expected non-numeric param to be rejected")
	}
	if _, ok := cd.intParam(1); ok {
		t.Fatalf("expected negative param to be rejected")
	}
	if _, ok := cd.intParam(5); ok {
		t.Fatalf("expected missing param to be rejected")
	}
	if _, ok := decodeCallback("play:nope").setIDParam(); ok {
		t.Fatalf("expected invalid uuid to be rejected")
	}
}
