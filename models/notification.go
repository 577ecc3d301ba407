package models

// AnnouncePayload is the queued payload of a shared-channel announcement.
type AnnouncePayload struct {
	Text string `json:"text"`
}
