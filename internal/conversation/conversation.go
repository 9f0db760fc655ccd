// Package conversation tracks per-sender dialogue state between the
// first inquiry and the final redirect, suppresses duplicate inbound
// messages, and prevents concurrent processing for the same sender.
package conversation

import (
	"time"

	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/identity"
)

// State is a sender's position in the data collection flow.
type State int

const (
	// StateInitial means no conversation is in progress.
	StateInitial State = iota

	// StateAwaitingIdentity means the bot asked for identity data and
	// is waiting for the sender's next message.
	StateAwaitingIdentity

	// StateReady means identity data was collected and the redirect
	// can be issued.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAwaitingIdentity:
		return "awaiting_identity"
	case StateReady:
		return "ready"
	default:
		return "initial"
	}
}

// Record holds everything known about an in-progress conversation.
type Record struct {
	SenderID   string
	State      State
	Department department.Code
	Inquiry    string // the original message that triggered the flow
	Student    identity.Student
	Retries    int // failed identity parse attempts
	UpdatedAt  time.Time
}
