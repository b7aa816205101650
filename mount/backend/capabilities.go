package backend

// BackendCapability represents a capability that a backend can provide

import "slices"

type BackendCapability string

const (
	// Core capabilities every entry storage must provide
	CapabilityDirectories BackendCapability = "directories"
	CapabilityFiles       BackendCapability = "files"
	// Volatile storages keep nothing once closed.
	CapabilityVolatile BackendCapability = "volatile"

	// Optional capabilities
	CapabilityOrdered BackendCapability = "ordered"
)

// RequiredCapabilities lists what the tree engine needs from a storage.
func RequiredCapabilities() []BackendCapability {
	return []BackendCapability{
		CapabilityDirectories,
		CapabilityFiles,
		CapabilityVolatile,
	}
}

// BackendCapabilities describes what a backend supports
type BackendCapabilities struct {
	Capabilities []BackendCapability `json:"capabilities"`
	// MaxFileSize limits file content in bytes; zero means unbounded.
	MaxFileSize int64 `json:"max_file_size"`
}

// Contains checks if a capability is supported
func (vbc *BackendCapabilities) Contains(cap BackendCapability) bool {
	return slices.Contains(vbc.Capabilities, cap)
}

// Missing returns the entries of required the backend does not provide.
func (vbc *BackendCapabilities) Missing(required ...BackendCapability) []BackendCapability {
	var missing []BackendCapability
	for _, cap := range required {
		if !vbc.Contains(cap) {
			missing = append(missing, cap)
		}
	}
	return missing
}
