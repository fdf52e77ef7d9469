package models

import (
	"encoding/json"
	"fmt"
)

// CommandKind discriminates the edit command variants.
type CommandKind string

const (
	CommandDelete  CommandKind = "delete"
	CommandReplace CommandKind = "replace"
)

// DeleteCommand removes the words in [StartWordIndex, EndWordIndex] of the
// parent transcript.
type DeleteCommand struct {
	StartWordIndex int `json:"start_word_index"`
	EndWordIndex   int `json:"end_word_index"`
}

// ReplaceCommand swaps the words in [StartWordIndex, EndWordIndex] of the
// parent transcript for NewText.
type ReplaceCommand struct {
	StartWordIndex int    `json:"start_word_index"`
	EndWordIndex   int    `json:"end_word_index"`
	NewText        string `json:"new_text"`
}

// EditCommand is a tagged union over the edit variants, keyed by "kind".
// After a successful unmarshal exactly one of Delete or Replace is non-nil,
// matching Kind.
type EditCommand struct {
	Kind    CommandKind
	Delete  *DeleteCommand
	Replace *ReplaceCommand
}

func (c *EditCommand) UnmarshalJSON(data []byte) error {
	var probe struct {
		Kind CommandKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Kind {
	case CommandDelete:
		var cmd DeleteCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			return err
		}
		*c = EditCommand{Kind: CommandDelete, Delete: &cmd}
	case CommandReplace:
		var cmd ReplaceCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			return err
		}
		*c = EditCommand{Kind: CommandReplace, Replace: &cmd}
	default:
		return fmt.Errorf("unknown edit command kind %q", probe.Kind)
	}
	return nil
}

// Validate checks the word-index range and the per-variant required fields.
func (c EditCommand) Validate() error {
	var start, end int
	switch c.Kind {
	case CommandDelete:
		if c.Delete == nil {
			return fmt.Errorf("delete command payload missing")
		}
		start, end = c.Delete.StartWordIndex, c.Delete.EndWordIndex
	case CommandReplace:
		if c.Replace == nil {
			return fmt.Errorf("replace command payload missing")
		}
		if c.Replace.NewText == "" {
			return fmt.Errorf("replace command requires new_text")
		}
		start, end = c.Replace.StartWordIndex, c.Replace.EndWordIndex
	default:
		return fmt.Errorf("unknown edit command kind %q", c.Kind)
	}

	if start < 0 {
		return fmt.Errorf("start_word_index must not be negative")
	}
	if end < start {
		return fmt.Errorf("end_word_index must not precede start_word_index")
	}
	return nil
}
