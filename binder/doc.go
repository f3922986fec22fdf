// Package binder populates request structs from HTTP requests.
//
// Each binder has the signature func(*http.Request, any) error and can be
// chained by the handler package. JSON reads a strict JSON body; Path reads
// router path parameters through an extractor such as chi.URLParam. A binder
// that finds nothing to bind returns ErrBinderNotApplicable.
package binder
