// Package gltf holds an in-memory glTF 2.0 document, validates its logical
// reference graph and reads and writes it as .gltf text or .glb binary.
//
// A Document owns every entity. Entities are created through the Document's
// Create methods and refer to each other by logical index, so a document
// can hold references that are out of range or cyclic until it is
// validated. Passing an entity of one document to a setter of another is a
// programming error and panics.
//
// Typed access to accessor data goes through package memory; the returned
// arrays alias buffer storage and must be resolved again after
// MergeBuffers.
package gltf
