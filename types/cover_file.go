package types

// CoverFile is the cover upload after it has been spooled to a temp file
type CoverFile struct {
	Path             string
	NewFilename      string
	OriginalFilename string
	ContentType      string
	Size             int64
}
