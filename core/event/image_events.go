package event

import (
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/library"
)

// ImageLoaded is published when an image becomes the current image.
type ImageLoaded struct {
	Image *analysis.ImageMetadata
}

func NewImageLoaded(meta *analysis.ImageMetadata) *ImageLoaded {
	return &ImageLoaded{Image: meta}
}

func (e *ImageLoaded) EventName() string {
	return "ImageLoaded"
}

// ImageLoadFailed is published when an image cannot be opened.
// The previous image, if any, stays loaded.
type ImageLoadFailed struct {
	Path  string
	Error error
}

func NewImageLoadFailed(path string, err error) *ImageLoadFailed {
	return &ImageLoadFailed{Path: path, Error: err}
}

func (e *ImageLoadFailed) EventName() string {
	return "ImageLoadFailed"
}

// ImageCleared is published when the current image is discarded.
type ImageCleared struct{}

func (e *ImageCleared) EventName() string {
	return "ImageCleared"
}

// RecentImagesChanged is published when the recent images list changes.
type RecentImagesChanged struct {
	Images []*library.RecentImage
}

func NewRecentImagesChanged(images []*library.RecentImage) *RecentImagesChanged {
	return &RecentImagesChanged{Images: images}
}

func (e *RecentImagesChanged) EventName() string {
	return "RecentImagesChanged"
}
