package service

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

// postgres SQLSTATE codes the services react to.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidText         = "22P02"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

// storeFailure maps a repository error onto the API taxonomy. Input postgres
// refuses to parse is the caller's fault, and a dangling foreign key means a
// referenced record does not exist. Everything else is a store failure.
func storeFailure(err error) *appErrors.Error {
	switch pqCode(err) {
	case pqInvalidText:
		return appErrors.Validation(err, "malformed identifier")
	case pqForeignKeyViolation:
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "referenced record does not exist")
	default:
		return appErrors.Store(err)
	}
}
