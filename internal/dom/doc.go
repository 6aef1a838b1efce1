// Package dom is a small in-memory document object model for the
// storefront's markup.
//
// A Document is parsed from HTML once. Views bind to elements found with
// CSS selectors, clone markup out of <template> elements, and mutate text,
// attributes and classes in place. Event listeners are held by the
// Document, keyed by node, and events bubble from the target to the root.
//
// Nodes cloned from templates are ephemeral: when a view discards one it
// must call Release so the Document forgets its listeners.
package dom
