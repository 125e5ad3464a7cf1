package entity

type (
	Role string

	// Message is a single turn of the conversation, either typed by the
	// user or produced by the remote assistant.
	Message struct {
		Role    Role   `json:"role"`
		Content string `json:"content"`
	}

	// Transcript is the locally held conversation history, oldest first.
	// The remote store is authoritative: callers replace their copy with
	// the coordinator's result rather than appending to it.
	Transcript []Message
)

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// LastExchange returns the trailing user/assistant message pair, or
// ok=false when the transcript does not end with such a pair.
func (t Transcript) LastExchange() (user Message, assistant Message, ok bool) {
	if len(t) < 2 {
		return
	}
	user, assistant = t[len(t)-2], t[len(t)-1]
	ok = user.Role == RoleUser && assistant.Role == RoleAssistant
	return
}

func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}
