package model

// Build is a fully translated build description: every image block from
// every discovered file, in declaration order, plus the top-level generate
// calls that live outside any image.
type Build struct {
	Images    []*Image
	Generates []*Call
}

// Image returns the image with the given name, or nil.
func (b *Build) Image(name string) *Image {
	for _, img := range b.Images {
		if img.Name == name {
			return img
		}
	}
	return nil
}
