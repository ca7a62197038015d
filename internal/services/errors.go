package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/weighttracker/internal/common"
)

// Input validation errors. All of them match common.ErrorValidation.
var (
	ErrEmptyUsername      = fmt.Errorf("%w: username is required", common.ErrorValidation)
	ErrEmptyPassword      = fmt.Errorf("%w: password is required", common.ErrorValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	ErrEmptyDate          = fmt.Errorf("%w: date is required", common.ErrorValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date must be MM/DD/YY", common.ErrorValidation)
	ErrEmptyWeight        = fmt.Errorf("%w: weight is required", common.ErrorValidation)
	ErrInvalidWeight      = fmt.Errorf("%w: weight must be a positive whole number", common.ErrorValidation)
	ErrInvalidGoal        = fmt.Errorf("%w: goal must be a non-negative whole number", common.ErrorValidation)
	ErrInvalidPhoneNumber = fmt.Errorf("%w: phone number must be 10 digits", common.ErrorValidation)
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNoPhoneNumber  = errors.New("no phone number registered")
	ErrNoSession      = errors.New("no saved session")
)
