package models

// Track is the metadata of a queued or playing track. It is transient:
// it is read from the queue at report time and has no persistent identity.
type Track struct {
	// Artist is the performing artist
	Artist string

	// Title is the track title
	Title string
}
