package models

// Story is a user-owned post. Image holds the storage path of the uploaded
// picture and may be empty. Date is kept exactly as the client sent it.
type Story struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Date    string `json:"date"`
	UserID  string `json:"userId"`
}

// StoryChanges is the mutable part of a story.
type StoryChanges struct {
	Title   string
	Content string
	Image   string
}
