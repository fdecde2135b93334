package port

import "legalynx/internal/domain"

// DocumentExtractor converts a binary document into plain text.
type DocumentExtractor interface {
	Extract(data []byte, kind domain.MediaKind) (string, error)
}
