package section

type Action string

const (
	ActionAdd    Action = "ADD"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// ModifySectionRequest is one item of a batch. Action defaults to UPDATE
// when omitted.
type ModifySectionRequest struct {
	ID     string   `json:"id,omitempty"`
	IDs    []string `json:"ids,omitempty"`
	Name   string   `json:"name,omitempty"`
	Action Action   `json:"action,omitempty"`
	Column *int     `json:"column,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type ModifySectionsRequest struct {
	Items []ModifySectionRequest `json:"items" binding:"required"`
}
