// Package upsert creates, replaces and deletes a parent record together with
// its child collections in one database transaction.
//
// Parent fields arrive as a flat map of raw strings and are validated against
// a Schema. Child collections arrive as uploaded files and/or JSON descriptor
// lists. A collection is replaced wholesale when new children are supplied and
// left untouched otherwise.
package upsert
