package request

// AskRequest is a free-text question for the business assistant
type AskRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}
