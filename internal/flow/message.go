package flow

// MessageKind discriminates outbound message intents.
type MessageKind string

const (
	KindText MessageKind = "text"
	KindList MessageKind = "list"
)

// Message is an outbound message intent. Handlers return these; they never
// send anything themselves.
type Message struct {
	Kind MessageKind  `json:"kind"`
	Text string       `json:"text,omitempty"`
	List *ListMessage `json:"list,omitempty"`
}

// ListMessage is a structured picker with numbered rows.
type ListMessage struct {
	Header      string    `json:"header,omitempty"`
	Body        string    `json:"body"`
	ButtonLabel string    `json:"button_label,omitempty"`
	Rows        []ListRow `json:"rows"`
}

// ListRow is one selectable entry in a list message.
type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Text builds a plain-text message intent.
func Text(body string) Message {
	return Message{Kind: KindText, Text: body}
}

// List builds a list-picker message intent.
func List(list ListMessage) Message {
	return Message{Kind: KindList, List: &list}
}
