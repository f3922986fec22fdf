// Package sanitizer holds small string transforms for cleaning user input
// and Compose/Apply helpers to chain them into pipelines.
//
//	slug := sanitizer.Apply(raw, sanitizer.Clean, strings.ToLower)
package sanitizer
