// Package form models a server-rendered HTML form as an ordered collection of
// typed elements.
//
// Each element keeps a single value in two representations: the input form as
// received from a request and the storage form handed to downstream code via
// DbValue. A request moves through three steps:
//
//	f.Fetch(form.Input{Request: form.RequestValues(r.PostForm, "data")})
//	ok := f.Validate()
//	values := f.DbValues()
//
// Validation problems are recorded per element as ErrorKind values and never
// returned as errors. Only structural misconfiguration, such as an unknown
// element type tag, is reported as an error when the form is built.
package form
