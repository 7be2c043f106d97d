package model

// ============ RPC MESSAGES ============
// One request/response pair per book service method.

const ServiceName = "book"

type GetBookRequest struct {
	BookID string `json:"book_id"`
}

type GetBookResponse struct {
	Book *Book `json:"book"`
}

type SearchBooksRequest struct {
	Query string `json:"query"`
}

type SearchBooksResponse struct {
	Books []Book `json:"books"`
}

type AddBookRequest struct {
	Book BookInput `json:"book"`
}

type AddBookResponse struct {
	Book *Book `json:"book"`
}
