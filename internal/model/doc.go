// Package model holds the storefront's observable state: the product
// catalog, the shopping cart and the buyer record.
//
// Models are plain structs owned by the event-loop goroutine. Every mutator
// publishes exactly one event on the shared bus carrying a snapshot of the
// state after the mutation, even when the new value equals the old one.
// Accessors never publish.
//
//	catalog.SetItems(list.Items)   // catalog:items:changed
//	cart.AddItem(product)          // cart:items:changed
//	buyer.SetEmail("a@b.c")        // buyer:data:changed
package model
