package minutes

// GenerateRequest is the payload for generating minutes from raw text.
type GenerateRequest struct {
	Title      string `json:"title" validate:"omitempty,max=500"`
	Transcript string `json:"transcript" validate:"required"`
}

// GenerateFromStorageRequest generates minutes from a transcript object
// previously uploaded to the bucket.
type GenerateFromStorageRequest struct {
	Title     string `json:"title" validate:"omitempty,max=500"`
	ObjectKey string `json:"object_key" validate:"required"`
}

// ListRequest paginates stored minutes records.
type ListRequest struct {
	Page     int `query:"page" validate:"omitempty,gte=1"`
	PageSize int `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}
