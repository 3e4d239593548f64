package rotator

//go:generate mockgen -destination=../mocks/rotatorr.go -package=mocks golift.io/applog/rotator Rotatorr

// Rotatorr allows passing in your own logic for file rotation.
// The introtator package provides the numbered backup chain.
type Rotatorr interface {
	// Rotate is called any time a file needs to be rotated.
	// Return an empty newFile if there was nothing to rotate.
	Rotate(fileName string) (newFile string, err error)
	// Post is called after rotation finishes. The active file is
	// not open yet; it is created by the next write.
	// This is blocking, so it should return quickly.
	Post(fileName, newFile string)

	// Dirs is called once on startup.
	// This should do any validation and return a list of directories to create.
	Dirs(fileName string) (dirPaths []string, err error)
}
