package upsert

// ImageValue is either an Uploaded binary or an ExternalURL.
type ImageValue interface {
	isImageValue()
}

// Uploaded is a binary attachment to be stored in the media store.
type Uploaded struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExternalURL is an image referenced by URL and stored as-is.
type ExternalURL string

func (Uploaded) isImageValue()    {}
func (ExternalURL) isImageValue() {}

// ImageValues orders uploads first, in arrival order, followed by one
// ExternalURL per descriptor whose "image" key is a non-empty string.
func ImageValues(files []Uploaded, descriptors []Descriptor) []ImageValue {
	out := make([]ImageValue, 0, len(files)+len(descriptors))
	for _, f := range files {
		out = append(out, f)
	}
	for _, d := range descriptors {
		if s, ok := d.String("image"); ok && s != "" {
			out = append(out, ExternalURL(s))
		}
	}
	return out
}
