package model

import "errors"

var ErrBookNotFound = errors.New("book not found")

// Fixed messages returned by the book service. They are the only text a
// caller ever sees for a failed call.
const (
	MsgBookNotFound      = "Book not found"
	MsgRetrieveBookError = "Error retrieving book"
	MsgSearchBooksError  = "Error searching books"
	MsgAddBookInvalid    = "Title and author are required"
	MsgAddBookError      = "Error adding book"
)
