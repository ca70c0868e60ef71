// Package frame provides a tabular Frame abstraction which may be backed either by a
// local, in-process row collection or by a dataset held in an external execution
// engine, switching between the two transparently as operations require. This root
// package defines the concepts employed throughout the library: data types, schemas,
// rows, the engine bridge, and the Frame facade itself.
package frame
