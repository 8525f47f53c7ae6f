package streamcodec

import "fmt"

// unknownCodecError reports a host lookup miss. Malformed *data* never
// produces an error in this module (see package doc and session.go); this
// is reserved for the host collaborator itself being asked for a codec it
// does not recognize.
func unknownCodecError(name string) error {
	return fmt.Errorf("streamcodec: unknown codec %q", name)
}
