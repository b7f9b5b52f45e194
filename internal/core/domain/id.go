package domain

import "github.com/google/uuid"

// DocumentID returns the stable identifier for a document in a source.
// The same source and URI always produce the same ID, so re-indexing a
// file overwrites its previous entry.
func DocumentID(sourceID, uri string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceID+"\x00"+uri)).String()
}
