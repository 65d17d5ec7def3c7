package entities

// ImageRef points at an asset held by the image store. A reference with an
// empty ReferenceID is the configured placeholder and is never released.
type ImageRef struct {
	URL         string
	ReferenceID string
}

func Placeholder(url string) ImageRef {
	return ImageRef{URL: url}
}

func (i ImageRef) IsPlaceholder() bool {
	return i.ReferenceID == ""
}
