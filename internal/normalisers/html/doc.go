// Package html provides a Normaliser for HTML files and fetched web pages.
// It drops scripts and styles, replaces tags with spaces, decodes entities
// and collapses whitespace.
package html
