package core

import "fmt"

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

type ErrorRouteNotFound struct {
	Path string
}

func (e ErrorRouteNotFound) Error() string {
	return fmt.Sprintf("Route Not Found: %s", e.Path)
}

func NewErrorRouteNotFound(path string) ErrorRouteNotFound {
	return ErrorRouteNotFound{Path: path}
}

type ErrorRetrieval struct {
	URL string
	Err error
}

func (e ErrorRetrieval) Error() string {
	return fmt.Sprintf("Retrieval Failed: %s: %v", e.URL, e.Err)
}

func (e ErrorRetrieval) Unwrap() error {
	return e.Err
}

func NewErrorRetrieval(url string, err error) ErrorRetrieval {
	return ErrorRetrieval{URL: url, Err: err}
}

type ErrorOverrideNotSet struct {
}

func (e ErrorOverrideNotSet) Error() string {
	return "Override Not Set"
}

func NewErrorOverrideNotSet() ErrorOverrideNotSet {
	return ErrorOverrideNotSet{}
}
