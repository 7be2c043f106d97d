package model

const ServiceName = "author"

type GetAuthorRequest struct {
	AuthorID string `json:"author_id"`
}

type GetAuthorResponse struct {
	Author *Author `json:"author"`
}

type SearchAuthorsRequest struct {
	Query string `json:"query"`
}

type SearchAuthorsResponse struct {
	Authors []Author `json:"authors"`
}

type AddAuthorRequest struct {
	Author AuthorInput `json:"author"`
}

type AddAuthorResponse struct {
	Author *Author `json:"author"`
}
