package types

type ImageRef struct {
	Url    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Post struct {
	Id      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Image   ImageRef `json:"image"`
}

// PostDraft is a post that has not been given an id yet
type PostDraft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Image   ImageRef `json:"image"`
}
