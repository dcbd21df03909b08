package storage

import "log"

// AttachmentRemover deletes uploaded attachment objects from the
// external object store. Cleanup is best-effort: persistence deletion
// is authoritative and must never be blocked by a storage failure.
type AttachmentRemover interface {
	Remove(publicIDs []string) error
}

// LogRemover stands in for the remote object store client. It records
// what would be deleted and always succeeds.
type LogRemover struct{}

func (LogRemover) Remove(publicIDs []string) error {
	if len(publicIDs) > 0 {
		log.Printf("storage: scheduling deletion of %d attachment(s)", len(publicIDs))
	}
	return nil
}
