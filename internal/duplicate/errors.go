package duplicate

import "errors"

var (
	// ErrUnknownMoneyType is returned when a snapshot allocation references
	// a money type code that does not exist in the target fiscal year.
	ErrUnknownMoneyType = errors.New("the snapshot references a money type code that does not exist in the target fiscal year")

	// ErrSnapshotVersion is returned when a snapshot was written by a newer
	// format version than this backend understands.
	ErrSnapshotVersion = errors.New("the snapshot format version is not supported")

	// ErrInvalidFileContent is returned when an inlined file payload is not
	// valid base64.
	ErrInvalidFileContent = errors.New("the inlined file content is not valid base64")
)
