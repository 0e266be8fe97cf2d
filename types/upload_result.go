package types

import (
	"encoding/json"
	"time"
)

// Result of an image host upload, mirrored back to the gateway caller.
// Extra holds the host's raw payload; its keys are written alongside the
// typed fields, which take precedence.
type UploadResult struct {
	PublicId         string         `json:"public_id"`
	AssetId          string         `json:"asset_id,omitempty"`
	Version          int            `json:"version,omitempty"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Format           string         `json:"format,omitempty"`
	ResourceType     string         `json:"resource_type,omitempty"`
	Bytes            int            `json:"bytes"`
	Type             string         `json:"type,omitempty"`
	Url              string         `json:"url"`
	SecureUrl        string         `json:"secure_url,omitempty"`
	OriginalFilename string         `json:"original_filename,omitempty"`
	Folder           string         `json:"folder,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	Extra            map[string]any `json:"-"`
}

func (r UploadResult) MarshalJSON() ([]byte, error) {
	type typedResult UploadResult

	typed, err := json.Marshal(typedResult(r))
	if err != nil || len(r.Extra) == 0 {
		return typed, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(r.Extra)+len(fields))
	for k, v := range r.Extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (r UploadResult) ImageRef() ImageRef {
	return ImageRef{
		Url:    r.Url,
		Width:  r.Width,
		Height: r.Height,
	}
}

type UploadParams struct {
	PublicId string
	Folder   string
}
