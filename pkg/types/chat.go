// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is one utterance in an interactive session. Turns are kept in
// an in-memory ordered list for the duration of the session only.
type ChatTurn struct {
	Role ChatRole `json:"role" yaml:"role"`
	Text string   `json:"text" yaml:"text"`
}
