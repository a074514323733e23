package command

// LoadImage opens an image file and makes it the current image.
type LoadImage struct {
	Path string
}

func (c *LoadImage) CommandName() string {
	return "LoadImage"
}

// ClearImage discards the current image and any displayed result.
type ClearImage struct{}

func (c *ClearImage) CommandName() string {
	return "ClearImage"
}

// AnalyzeImage analyzes the current image with the selected provider.
type AnalyzeImage struct{}

func (c *AnalyzeImage) CommandName() string {
	return "AnalyzeImage"
}

// ClearRecent empties the recent images list.
type ClearRecent struct{}

func (c *ClearRecent) CommandName() string {
	return "ClearRecent"
}
