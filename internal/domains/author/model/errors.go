package model

import "errors"

var ErrAuthorNotFound = errors.New("author not found")

const (
	MsgAuthorNotFound      = "Author not found"
	MsgRetrieveAuthorError = "Error retrieving author"
	MsgSearchAuthorsError  = "Error searching authors"
	MsgAddAuthorInvalid    = "Name is required"
	MsgAddAuthorError      = "Error adding author"
)
