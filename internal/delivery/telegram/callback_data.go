package telegram

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionPlay   = "play"
	actionOption = "opt"
	actionSubmit = "submit"
	actionTop    = "top"
	actionSets   = "sets"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as a non-negative int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// setIDParam returns the first parameter as a set ID.
func (cd callbackData) setIDParam() (uuid.UUID, bool) {
	if len(cd.Params) != 1 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(cd.Params[0])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func buildPlayCallback(setID uuid.UUID) string {
	return callbackData{Action: actionPlay, Params: []string{setID.String()}}.encode()
}

func buildTopCallback(setID uuid.UUID) string {
	return callbackData{Action: actionTop, Params: []string{setID.String()}}.encode()
}

func buildSetsCallback() string {
	return actionSets
}

// buildOptionCallback builds callback data for selecting an option of the
// question at questionIndex.
func buildOptionCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionOption,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(optionIndex)},
	}.encode()
}

func buildSubmitCallback(questionIndex int) string {
	return callbackData{
		Action: actionSubmit,
		Params: []string{strconv.Itoa(questionIndex)},
	}.encode()
}
