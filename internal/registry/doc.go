// Package registry maps component type names to their implementations. A type
// may have several variants, each bound to a range of target core versions;
// resolution picks the first variant whose constraint admits the requested
// version.
package registry
