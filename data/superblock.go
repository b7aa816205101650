package data

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Superblock identifies one mounted filesystem instance.
type Superblock struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	FileCount int64     `json:"file_count"`
	DirCount  int64     `json:"dir_count"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSuperblock seeds DirCount with -1, so creating the root directory brings it to 0.
func NewSuperblock(device string) Superblock {
	return Superblock{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Device:    device,
		FileCount: 0,
		DirCount:  -1,
		CreatedAt: time.Now(),
	}
}

// Report renders the superblock the way getinfo prints it.
func (sb Superblock) Report() string {
	return fmt.Sprintf("Device: %s\nFilecount: %d\nDircount: %d", sb.Device, sb.FileCount, sb.DirCount)
}
