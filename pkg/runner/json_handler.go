package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/roster/pkg/domain"
)

// JSONHandler implements IOHandler with JSON Lines, for scripts and other processes.
// Every output is one line: either {"state": ...} or {"system": "..."}.
// Input lines are either wire actions ({"type": ...}), quoted commands or raw commands.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

type jsonLine struct {
	State  *domain.State `json:"state,omitempty"`
	System string        `json:"system,omitempty"`
}

func (h *JSONHandler) Output(ctx context.Context, state *domain.State) error {
	return h.Encoder.Encode(jsonLine{State: state})
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		text, err := h.Reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			if err != nil {
				return "", err
			}
			continue
		}

		var quoted string
		if json.Unmarshal([]byte(text), &quoted) == nil {
			text = quoted
		}
		return SanitizeInput(text)
	}
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(jsonLine{System: msg})
}
