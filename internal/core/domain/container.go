package domain

// Container is a searchable storage unit: a shared site or one of its drives.
// Containers are created during enumeration and read-only afterwards.
type Container struct {
	// ID is the opaque remote identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// WebURL is the browser link to the container.
	WebURL string `json:"web_url,omitempty"`
}
