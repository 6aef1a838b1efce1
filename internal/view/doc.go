// Package view binds storefront UI components to elements of a
// dom.Document.
//
// Every view is constructed from a root element, looks up the elements it
// needs with Ensure (failing with a *errors.ConfigError when the markup is
// incomplete) and exposes Render(State). State structs use Opt fields:
// Render applies only the fields that are set and leaves everything else
// as it is on screen, so independent callers can update different fields
// in any order.
//
// Views publish user intent on the event bus and never read models.
package view
