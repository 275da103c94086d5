package service

import (
	"errors"
)

var ErrorViewNotFound = errors.New("view not found")
var ErrorViewAlreadyExists = errors.New("view already exists")

type Servicer interface {
	CreateView(name string, options *ViewOptions) (*View, error)
	GetView(name string) (*View, error)
	ListViews() []*View
	DeleteView(name string) error
}
