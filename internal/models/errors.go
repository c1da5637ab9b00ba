package models

import "errors"

// ErrInvalidAccessModifier is returned when a JSON model names an unknown constructor modifier
var ErrInvalidAccessModifier = errors.New("invalid access modifier")
