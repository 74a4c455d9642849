package collection

import "errors"

var (
	// ErrMissingDirectory indicates the records root does not exist.
	ErrMissingDirectory = errors.New("records directory does not exist")

	// ErrEmptyCollection indicates the records root contains no record files.
	ErrEmptyCollection = errors.New("collection has no record files")

	// ErrInvalidMetadata indicates the collection metadata file is unreadable
	// or violates the variant's metadata contract.
	ErrInvalidMetadata = errors.New("invalid collection metadata")

	// ErrMalformedRecord indicates a record file is not a JSON object.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingField indicates a required record field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch indicates a record's type tag carries the wrong value.
	ErrTypeMismatch = errors.New("type tag mismatch")

	// ErrMembershipMismatch indicates a record claims membership in a
	// different collection than the one being compiled.
	ErrMembershipMismatch = errors.New("membership mismatch")

	// ErrInvalidArgument indicates a caller-supplied option is not usable.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStaleArtifact indicates the on-disk artifact no longer matches the
	// compiled sources.
	ErrStaleArtifact = errors.New("stale artifact")

	// ErrIO covers read and write failures that are not simple absence.
	ErrIO = errors.New("io failure")
)
