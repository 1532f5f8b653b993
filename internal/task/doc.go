// Package task manages the upload queue: background processing of product
// publishing tasks with a fixed pool of workers. Each task's pipeline
// uploads the product images and then creates the product record, and the
// outcome is delivered asynchronously through a single serialized
// completion callback so producers never block on the network.
package task
