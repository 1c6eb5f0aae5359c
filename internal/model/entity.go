package model

// Entity is a record type managed by a store. Implementations embed Meta and
// return a copy of themselves carrying the given metadata.
type Entity[T any] interface {
	Metadata() Meta
	WithMetadata(Meta) T
}

// Input is the create payload of an entity. Server-assigned fields are not
// part of it, so client copies of id and timestamps are dropped on decode.
type Input[T any] interface {
	Record() T
}

// Patch is a partial update: Apply copies only the fields the client sent.
type Patch[T any] interface {
	Apply(T) T
}
