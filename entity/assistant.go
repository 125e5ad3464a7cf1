package entity

// AssistantDescriptor is the remote assistant's descriptive metadata.
// Immutable once fetched; refetched when the user switches assistants.
type AssistantDescriptor struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Model string   `json:"model"`
	Tools []string `json:"tools"`
}
