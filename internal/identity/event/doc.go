// Package event carries DerivedEvent values from the usecase to the store.
//
// A DerivedEvent is published once per uuid handed out by a derive call,
// after the uuid has been computed. Its EventID is unique per publish and is
// the only key the Consumer deduplicates on; publishing without one is
// rejected. Delivery is at most once per EventID within the Consumer's
// remembered window and best effort across a shutdown: events still queued
// when the Bus closes are drained, later publishes fail with ErrBusClosed.
package event
